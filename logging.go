package cblite

import (
	"log"
	"sync"
)

// LogDomain identifies which native subsystem emitted a log message.
type LogDomain uint8

const (
	LogDomainDatabase   LogDomain = 0
	LogDomainQuery      LogDomain = 1
	LogDomainReplicator LogDomain = 2
	LogDomainNetwork    LogDomain = 3
	LogDomainListener   LogDomain = 4
)

func (d LogDomain) String() string {
	switch d {
	case LogDomainDatabase:
		return "Database"
	case LogDomainQuery:
		return "Query"
	case LogDomainReplicator:
		return "Replicator"
	case LogDomainNetwork:
		return "Network"
	case LogDomainListener:
		return "Listener"
	}
	return "Unknown"
}

// LogLevel orders log messages by severity.
type LogLevel uint8

const (
	LogDebug   LogLevel = 0
	LogVerbose LogLevel = 1
	LogInfo    LogLevel = 2
	LogWarning LogLevel = 3
	LogError   LogLevel = 4
	LogNone    LogLevel = 5
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogVerbose:
		return "VERBOSE"
	case LogInfo:
		return "INFO"
	case LogWarning:
		return "WARNING"
	case LogError:
		return "ERROR"
	case LogNone:
		return "NONE"
	}
	return "UNKNOWN"
}

var logMu sync.Mutex
var logCallback LogCallback

func currentLogCallback() LogCallback {
	logMu.Lock()
	defer logMu.Unlock()
	return logCallback
}

// SetLogCallback routes native log messages at or above level to fn instead
// of the console. A nil fn restores console logging.
func SetLogCallback(level LogLevel, fn LogCallback) {
	logMu.Lock()
	logCallback = fn
	logMu.Unlock()
	if fn == nil {
		c_CBLLog_SetCallback(0)
		return
	}
	c_CBLLog_SetCallbackLevel(uint8(level))
	c_CBLLog_SetCallback(logTrampoline)
}

// SetConsoleLogLevel limits what the native library writes to stderr.
func SetConsoleLogLevel(level LogLevel) {
	c_CBLLog_SetConsoleLevel(uint8(level))
}

// StdLogCallback forwards native log messages to the standard library
// logger. Suitable as a SetLogCallback argument.
func StdLogCallback(domain LogDomain, level LogLevel, message string) {
	log.Printf("cblite [%s] %s: %s", domain, level, message)
}
