package entrypoints

import (
	"os"

	"github.com/markormesher/filecheck/internal/fileext"
	"github.com/markormesher/filecheck/internal/logging"
	"github.com/markormesher/filecheck/internal/schema"
	"github.com/markormesher/filecheck/internal/sources"
	"github.com/markormesher/filecheck/internal/utils"
)

var l = logging.Logger

func Run(conf *schema.FilecheckConfig) *schema.Report {
	// auto-created storage must be removed on every exit path, including when no files are gathered
	defer func() {
		if conf.RepoStoragePathWasAutoCreated {
			l.Info("Cleaning up temporary storage")
			err := conf.CleanupStorage()
			if err != nil {
				l.Error("Error cleaning up storage", "error", err)
			}
		}
	}()

	l.Info("Starting to gather files to check")
	jobQueue := gatherJobs(conf)
	l.Info("Finished gathering files to check", "count", jobQueue.Size)

	report := &schema.Report{}

	if jobQueue.Size == 0 {
		l.Info("No files to check - exiting")
		return report
	}

	for {
		job, ok := jobQueue.Pop()
		if !ok {
			break
		}

		l.Info("Checking file", "filename", job.Filename, "origin", job.Origin)
		supported := fileext.CheckFileExtension(job.Filename)

		report.Results = append(report.Results, schema.CheckResult{
			Filename:  job.Filename,
			Origin:    job.Origin,
			Supported: supported,
		})
		report.Checked++
		if supported {
			l.Info("Result: supported", "filename", job.Filename)
			report.Supported++
		} else {
			l.Warn("Result: unsupported", "filename", job.Filename)
			report.Unsupported++
		}
	}

	l.Info("Finished checking files", "checked", report.Checked, "supported", report.Supported, "unsupported", report.Unsupported)

	return report
}

func gatherJobs(conf *schema.FilecheckConfig) *utils.Queue[schema.CheckJob] {
	var jobQueue utils.Queue[schema.CheckJob]

	for i := range conf.Sources {
		sourceConfig := &conf.Sources[i]

		l.Info("Initialising source", "type", sourceConfig.Type)
		source, err := sources.FromConfig(conf, sourceConfig)
		if err != nil {
			l.Error("Error initialising source", "error", err)
			os.Exit(1)
		}

		err = source.Init(conf)
		if err != nil {
			l.Error("Error initialising source", "error", err)
			os.Exit(1)
		}

		filenames, err := source.Filenames()
		if err != nil {
			l.Error("Error gathering filenames", "error", err, "source", source.Describe())
			os.Exit(1)
		}

		l.Info("Finished gathering filenames", "source", source.Describe(), "count", len(filenames))

		for _, filename := range filenames {
			if conf.Ignores(filename) {
				l.Info("Filename matches an ignore pattern - skipping", "filename", filename)
				continue
			}

			jobQueue.Push(schema.CheckJob{
				Filename: filename,
				Origin:   source.Describe(),
			})
		}

		l.Info("De-initialising source", "source", source.Describe())
		err = source.Deinit()
		if err != nil {
			l.Error("Error de-initialising source", "error", err)
			os.Exit(1)
		}
	}

	return &jobQueue
}
