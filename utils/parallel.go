// Package utils contains helpers shared by the camerainit packages.
package utils

import (
	"context"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

type (
	// MemberWorkFunc runs for each work item (member) of a group.
	MemberWorkFunc func(memberNum, workNum int) error
	// GroupWorkDoneFunc runs when a single group's work is done; helpful for merge stages.
	GroupWorkDoneFunc func()
	// GroupWorkFunc runs to determine what work members should do, if any.
	GroupWorkFunc func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc)
)

// GroupWorkParallel splits `totalSize` work items into at most `numWorkers` contiguous groups and
// runs each group on its own goroutine. It returns once every group is done. The first error
// returned by a member stops its group and is returned; a panicking member is reported as an
// error rather than crashing the process. A non-positive `numWorkers` means ParallelFactor.
func GroupWorkParallel(ctx context.Context, totalSize, numWorkers int, groupWork GroupWorkFunc) error {
	if totalSize <= 0 {
		return nil
	}
	if numWorkers <= 0 {
		numWorkers = ParallelFactor
	}
	if numWorkers > totalSize {
		numWorkers = totalSize
	}
	groupSize := totalSize / numWorkers
	extra := totalSize % numWorkers

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(numWorkers)
	for groupNum := 0; groupNum < numWorkers; groupNum++ {
		groupNum := groupNum
		from := groupSize * groupNum
		to := groupSize * (groupNum + 1)
		if groupNum == numWorkers-1 {
			to += extra
		}
		group.Go(func() (err error) {
			defer func() {
				if thePanic := recover(); thePanic != nil {
					err = fmt.Errorf("got panic running group %d in parallel: %v", groupNum, thePanic)
				}
			}()
			memberWork, groupWorkDone := groupWork(groupNum, to-from, from, to)
			if memberWork != nil {
				memberNum := 0
				for workNum := from; workNum < to; workNum++ {
					if err := memberWork(memberNum, workNum); err != nil {
						return errors.Wrapf(err, "work item %d", workNum)
					}
					memberNum++
				}
			}
			if groupWorkDone != nil {
				groupWorkDone()
			}
			return nil
		})
	}
	return group.Wait()
}

// ParallelForEach runs `work` once for every index in [0, totalSize) using at most `numWorkers`
// goroutines.
func ParallelForEach(ctx context.Context, totalSize, numWorkers int, work func(i int) error) error {
	return GroupWorkParallel(ctx, totalSize, numWorkers, func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc) {
		return func(memberNum, workNum int) error {
			return work(workNum)
		}, nil
	})
}
