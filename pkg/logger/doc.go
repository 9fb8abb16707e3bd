// Package logger builds *slog.Logger instances for the slug tooling.
//
// New applies functional options on top of production-safe defaults (JSON,
// info level, stderr). Values registered with WithContextValue are read from
// the context of each record, so code that logs with *Context methods picks up
// request-scoped attributes without passing them around.
//
// Helper constructors in attr.go keep attribute names consistent: Table, Field,
// Slug, PreviousSlug, Key and Count describe slug generation, while Error only
// produces an attribute for a non-nil error:
//
//	log := logger.New(logger.WithEnvironment(os.Getenv("APP_ENV"), "slugify"))
//	log.InfoContext(ctx, "slug updated",
//	    logger.Table("articles"),
//	    logger.Slug("dr-who"),
//	    logger.Error(err),
//	)
package logger
