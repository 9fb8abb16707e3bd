// Package pg bootstraps PostgreSQL access for the slug bindings: a pgx/v5
// connection pool with retry (Connect), goose/v3 migrations routed through a
// structured logger (Migrate), a ping-based Healthcheck, and helpers that
// classify pgx errors.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//
// Configuration comes from PG_* environment variables; see Config.
package pg
