// Package cli contains the camerainit command line application.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/camerainit/config"
)

const (
	configFlag         = "config"
	inputFlag          = "input"
	imageFolderFlag    = "imageFolder"
	sensorDatabaseFlag = "sensorDatabase"
	outputFlag         = "output"
	verboseLevelFlag   = "verboseLevel"
	logFileFlag        = "log-file"

	defaultFocalLengthPixFlag = "defaultFocalLengthPix"
	defaultFieldOfViewFlag    = "defaultFieldOfView"
	defaultIntrinsicFlag      = "defaultIntrinsic"
	defaultCameraModelFlag    = "defaultCameraModel"
	groupCameraModelFlag      = "groupCameraModel"
	allowIncompleteOutputFlag = "allowIncompleteOutput"
	allowSingleViewFlag       = "allowSingleView"
	workersFlag               = "workers"
)

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "camerainit",
		Usage:           "initialize the camera intrinsics of a set of images",
		UsageText:       fmt.Sprintf("camerainit (--%s <scene> | --%s <dir>) --%s <file> [options]", inputFlag, imageFolderFlag, sensorDatabaseFlag),
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`; flags override its values",
			},
			&cli.PathFlag{
				Name:    inputFlag,
				Aliases: []string{"i"},
				Usage:   "scene file whose views are initialized",
			},
			&cli.PathFlag{
				Name:  imageFolderFlag,
				Usage: "folder of images to build the scene from",
			},
			&cli.PathFlag{
				Name:    sensorDatabaseFlag,
				Aliases: []string{"s"},
				Usage:   "camera sensor width database, one 'make;model;width' per line",
			},
			&cli.PathFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Value:   config.DefaultOutput,
				Usage:   "scene file to write",
			},
			&cli.Float64Flag{
				Name:  defaultFocalLengthPixFlag,
				Value: -1,
				Usage: "focal length in pixels applied to every camera",
			},
			&cli.Float64Flag{
				Name:  defaultFieldOfViewFlag,
				Value: -1,
				Usage: "field of view in degrees applied to every camera",
			},
			&cli.StringFlag{
				Name:  defaultIntrinsicFlag,
				Usage: "calibration matrix 'f;0;ppx;0;f;ppy;0;0;1' applied to every camera",
			},
			&cli.StringFlag{
				Name:  defaultCameraModelFlag,
				Usage: "camera model: pinhole, radial1, radial3, brown, fisheye4 or fisheye1",
			},
			&cli.IntFlag{
				Name:  groupCameraModelFlag,
				Value: 2,
				Usage: "0: one intrinsic per view, 1: group by metadata, 2: group by metadata or folder",
			},
			&cli.BoolFlag{
				Name:  allowIncompleteOutputFlag,
				Usage: "write the scene even if some cameras could not be initialized",
			},
			&cli.BoolFlag{
				Name:  allowSingleViewFlag,
				Usage: "succeed with a single initialized view",
			},
			&cli.IntFlag{
				Name:  workersFlag,
				Usage: "number of images processed at once; 0 uses every CPU",
			},
			&cli.StringFlag{
				Name:    verboseLevelFlag,
				Aliases: []string{"v"},
				Usage:   "log level: fatal, error, warning, info, debug or trace",
			},
			&cli.PathFlag{
				Name:  logFileFlag,
				Usage: "also write logs to `FILE`",
			},
		},
		Action: InitializeAction,
	}
}
