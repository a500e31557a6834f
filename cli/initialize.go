package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/camerainit/camerainit"
	"go.viam.com/camerainit/config"
	"go.viam.com/camerainit/logging"
	"go.viam.com/camerainit/sensordb"
	"go.viam.com/camerainit/sfm"
)

// InitializeAction is the corresponding Action for the camerainit command.
func InitializeAction(c *cli.Context) error {
	conf, err := configFromFlags(c)
	if err != nil {
		return err
	}
	if err := conf.Ensure(); err != nil {
		return err
	}
	logger, closer, err := conf.NewLogger("camerainit")
	if err != nil {
		return err
	}
	defer goutils.UncheckedErrorFunc(closer.Close)
	defer goutils.UncheckedErrorFunc(logger.Sync)

	return Initialize(c.Context, conf, c.App.Writer, logger)
}

// configFromFlags reads the config file, if any, and applies the flags that were set on top of it.
func configFromFlags(c *cli.Context) (*config.Config, error) {
	conf := config.New()
	if path := c.Path(configFlag); path != "" {
		var err error
		if conf, err = config.Read(path); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %q", path)
		}
	}

	setString := func(flag string, dst *string) {
		if c.IsSet(flag) {
			*dst = c.String(flag)
		}
	}
	setString(inputFlag, &conf.Input)
	setString(imageFolderFlag, &conf.ImageFolder)
	setString(sensorDatabaseFlag, &conf.SensorDatabase)
	setString(outputFlag, &conf.Output)
	setString(verboseLevelFlag, &conf.LogLevel)
	setString(logFileFlag, &conf.LogFile)
	setString(defaultIntrinsicFlag, &conf.DefaultIntrinsic)
	setString(defaultCameraModelFlag, &conf.DefaultCameraModel)

	if c.IsSet(defaultFocalLengthPixFlag) {
		conf.DefaultFocalLengthPix = c.Float64(defaultFocalLengthPixFlag)
	}
	if c.IsSet(defaultFieldOfViewFlag) {
		conf.DefaultFieldOfView = c.Float64(defaultFieldOfViewFlag)
	}
	if c.IsSet(groupCameraModelFlag) {
		conf.GroupCameraModel = camerainit.GroupMode(c.Int(groupCameraModelFlag))
	}
	if c.IsSet(allowIncompleteOutputFlag) {
		conf.AllowIncompleteOutput = c.Bool(allowIncompleteOutputFlag)
	}
	if c.IsSet(allowSingleViewFlag) {
		conf.AllowSingleView = c.Bool(allowSingleViewFlag)
	}
	if c.IsSet(workersFlag) {
		conf.Workers = c.Int(workersFlag)
	}
	return conf, nil
}

// Initialize runs a camera initialization as described by conf, printing the report to out. The
// scene is written only if the run succeeds.
func Initialize(ctx context.Context, conf *config.Config, out io.Writer, logger logging.Logger) error {
	db, err := sensordb.ParseDatabase(conf.SensorDatabase)
	if err != nil {
		return errors.Wrap(err, "invalid sensor database")
	}
	logger.Debugw("sensor database loaded", "path", conf.SensorDatabase, "sensors", db.Len())

	var data *sfm.Data
	if conf.Input != "" {
		data, err = sfm.Load(conf.Input)
	} else {
		data, err = sfm.ViewsFromFolder(ctx, conf.ImageFolder, logger)
	}
	if err != nil {
		return err
	}

	initializer, err := camerainit.New(db, conf.Options, nil, logger)
	if err != nil {
		return err
	}
	diag, runErr := initializer.Run(ctx, data)
	if diag != nil {
		printf(out, "%s", diag.String())
	}
	if runErr != nil {
		return runErr
	}

	if err := sfm.Save(data, conf.Output); err != nil {
		return errors.Wrapf(err, "failed to save %q", conf.Output)
	}
	logger.Infow("scene saved", "path", conf.Output)
	return nil
}

// printf prints a message to the writer with a trailing newline.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
