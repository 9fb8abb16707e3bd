// Package mongo opens MongoDB clients for the slug bindings using
// go.mongodb.org/mongo-driver/v2. New connects and pings with retry;
// NewWithDatabase also selects the database named in Config.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//
// Settings come from MONGODB_* environment variables; see Config.
package mongo
