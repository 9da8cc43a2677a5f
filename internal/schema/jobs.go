package schema

// CheckJob is one filename to check, plus where it came from for reporting.
type CheckJob struct {
	Filename string
	Origin   string
}

// CheckResult is the outcome of one check job.
type CheckResult struct {
	Filename  string
	Origin    string
	Supported bool
}

// Report summarises a full run.
type Report struct {
	Results     []CheckResult
	Checked     int
	Supported   int
	Unsupported int
}
