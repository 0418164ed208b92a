package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	// Add more jobs here
}

// RegisterCronJob lets job packages add themselves without creating an
// import cycle with config.
func RegisterCronJob(name string, schedule string, job func(...string)) {
	CronJobs[name] = CronJob{Schedule: schedule, Job: job}
}
