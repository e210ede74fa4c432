// Package logger builds the *slog.Logger shared by the handlekit CLI and web
// server.
//
// New assembles a handler from functional options: output format (text or
// json), minimum level, static attributes, and ContextExtractor callbacks that
// pull request-scoped values such as the request id out of a
// context.Context at log time.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "handlekit"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "suggestions generated",
//		logger.Component("web"),
//		logger.Salt(salt),
//		logger.Duration(time.Since(start)),
//	)
//
// Attribute helpers in attr.go keep key names consistent. Error and Errors
// return an empty attribute for nil errors, so they can be passed without a
// nil check.
//
// The generation core in pkg/handle never logs; only the outer layers do.
package logger
