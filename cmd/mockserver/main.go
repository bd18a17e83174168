// Command mockserver serves the registry API over an in-memory store seeded
// with DOC001 (valid), DOC002 (warning) and DOC003 (invalid).
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/server"
	"github.com/dmitrijs2005/docverifier/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	cfg.EndpointAddrGRPC = ""
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	app := server.NewMockApp(cfg, logger)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
