// Package jobs provides scheduled background tasks for the fulfillment
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the workflow itself cannot trigger.
//
// # Available Jobs
//
// 1. ShortageRecheckJob - Runs every thirty seconds to re-query the stock
// oracle for items flagged after a shortage and clear the flag once stock
// covers the requested quantity again.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(recheckShortagesHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The recheck job logs failures and waits for the next tick; an unreachable
// oracle leaves flags untouched rather than guessing at stock levels.
package jobs
