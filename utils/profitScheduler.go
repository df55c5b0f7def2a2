package utils

import (
	"context"
	"log"
	"time"

	"github.com/iamspiddy/auto-yield-profits-sub001/config"
	"github.com/iamspiddy/auto-yield-profits-sub001/database"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROFIT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// batchTimeout is the overall deadline for one engine run
func batchTimeout() time.Duration {
	minutes := 10
	if config.AppConfig != nil && config.AppConfig.EngineBatchTimeoutMin > 0 {
		minutes = config.AppConfig.EngineBatchTimeoutMin
	}
	return time.Duration(minutes) * time.Minute
}

// RunScheduledCompounding runs one compounding pass under the batch deadline
func RunScheduledCompounding() {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout())
	defer cancel()

	result := ApplyWeeklyCompounding(ctx, database.Database.Db, time.Now())
	if !result.Success {
		logScheduler("Compounding pass failed: " + result.Errors[0])
		return
	}
	for _, e := range result.Errors {
		logScheduler("Compounding item error: " + e)
	}
}

// RunScheduledMaturityWorkflow runs the full maturity workflow under the
// batch deadline
func RunScheduledMaturityWorkflow() {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout())
	defer cancel()

	result := RunMaturityWorkflow(ctx, database.Database.Db, time.Now())
	for _, e := range result.Errors {
		logScheduler("Maturity workflow error: " + e)
	}
	logScheduler("Maturity workflow done")
}

// InitializeProfitScheduler wires the compounding pass and the maturity
// workflow into cron. Safe to invoke the jobs repeatedly: the selection
// filters and guarded updates keep re-runs from double-applying.
func InitializeProfitScheduler() *cron.Cron {
	logScheduler("Initializing profit scheduler...")

	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.CompoundingCron, func() {
		logScheduler("Running compounding pass...")
		RunScheduledCompounding()
	}); err != nil {
		log.Fatalf("Invalid COMPOUNDING_CRON expression: %v", err)
	}

	if _, err := c.AddFunc(config.AppConfig.MaturityWorkflowCron, func() {
		logScheduler("Running maturity workflow...")
		RunScheduledMaturityWorkflow()
	}); err != nil {
		log.Fatalf("Invalid MATURITY_WORKFLOW_CRON expression: %v", err)
	}

	c.Start()

	logScheduler("Profit scheduler started")
	return c
}
