package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

// ETLLogger is the leveled logger shared by every pipeline component.
// It writes to a dated log file and mirrors everything to stdout.
type ETLLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	isVerbose   bool
}

// NewETLLogger creates a new pipeline logger
func NewETLLogger(verbose bool) *ETLLogger {
	currentTime := time.Now().Format("2006-01-02")
	logFileName := fmt.Sprintf("pulse_etl_%s.log", currentTime)

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open or create log file: %v", err)
	}

	infoLogger := log.New(file, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger := log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger := log.New(file, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

	return &ETLLogger{
		infoLogger:  infoLogger,
		errorLogger: errorLogger,
		debugLogger: debugLogger,
		isVerbose:   verbose,
	}
}

// Info logs an informational message
func (l *ETLLogger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.infoLogger.Println(msg)
	log.Println("INFO:", msg)
}

// Error logs an error message
func (l *ETLLogger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.errorLogger.Println(msg)
	log.Println("ERROR:", msg)
}

// Debug logs a debug message (only in verbose mode)
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.debugLogger.Println(msg)
	log.Println("DEBUG:", msg)
}

// LogPipelineStart logs the beginning of a pipeline run
func (l *ETLLogger) LogPipelineStart() {
	l.Info("Starting Pulse ETL pipeline")
}

// LogPipelineComplete logs the end of a pipeline run with totals
func (l *ETLLogger) LogPipelineComplete(startTime time.Time, documents, records, loaded int) {
	duration := time.Since(startTime)
	l.Info("Pulse ETL pipeline finished. Duration: %v", duration)
	l.Info("Processed: %d documents, %d records mapped, %d records loaded", documents, records, loaded)
}

// LogExtractStart logs the beginning of the extract phase
func (l *ETLLogger) LogExtractStart() {
	l.Info("Starting Extract phase (walking document tree)")
}

// LogExtractComplete logs the end of the extract phase
func (l *ETLLogger) LogExtractComplete(documents int, skipped int, duration time.Duration) {
	l.Info("Extract phase finished. Duration: %v", duration)
	l.Info("Parsed %d documents, skipped %d", documents, skipped)
}
