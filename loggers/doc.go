// Package loggers provides reagent's logging: a zerolog logger for the log file and two hooks
// that observe agent runs.
//
// [ZerologHook] writes one structured record per run, iteration, model call and tool call,
// tagged with the session id from the context. [ConsoleHook] is the human sink: it prints the
// raw prompt in red and the raw response in green, and in verbose mode dumps tool calls as YAML.
//
//	logger, err := loggers.New(loggers.Config{Level: "info", File: ".logs/reagent.log"})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	registry := hooks.NewRegistry().
//	    Register(loggers.NewZerologHook(logger.Zerolog())).
//	    Register(loggers.NewConsoleHook(os.Stdout).WithVerbose(true))
package loggers
