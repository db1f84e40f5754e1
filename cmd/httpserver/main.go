package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/castornet/castor/cmd/flags"
	"github.com/castornet/castor/coordinator"
	"github.com/castornet/castor/httpserver"
	"github.com/castornet/castor/interfaces"
	"github.com/castornet/castor/node"
	"github.com/castornet/castor/placement"
	"github.com/castornet/castor/registry"
)

var serverFlags []cli.Flag = append([]cli.Flag{
	flags.ListenAddrFlag,
	flags.ReplicationFactorFlag,
	flags.PlacementSeedFlag,
	flags.NodeFlag,
}, flags.CommonFlags...)

func main() {
	app := &cli.App{
		Name:  "castor-server",
		Usage: "Serve the content-addressed replicated blob store API",
		Flags: serverFlags,
		Action: func(cCtx *cli.Context) error {
			listenAddr := cCtx.String(flags.ListenAddrFlag.Name)
			replicationFactor := cCtx.Int(flags.ReplicationFactorFlag.Name)
			placementSeed := cCtx.Int64(flags.PlacementSeedFlag.Name)
			startupNodes := cCtx.StringSlice(flags.NodeFlag.Name)

			logger := flags.SetupLogger(cCtx)

			if replicationFactor < 1 {
				logger.Error("Invalid replication factor", "factor", replicationFactor)
				return fmt.Errorf("replication factor must be at least 1, got %d", replicationFactor)
			}

			if placementSeed == 0 {
				placementSeed = time.Now().UnixNano()
			}
			selector := placement.NewRandomSelector(placementSeed)

			nodeFactory := node.NewFactory(logger)
			reg := registry.NewRegistry(logger)
			coord := coordinator.New(reg, selector, replicationFactor, logger)

			// Register any nodes given on the command line before serving.
			for _, spec := range startupNodes {
				nodeID, locationURI, err := parseNodeSpec(spec)
				if err != nil {
					logger.Error("Invalid --node specification", "spec", spec, "err", err)
					return err
				}

				location, err := interfaces.NewNodeLocation(locationURI)
				if err != nil {
					logger.Error("Invalid node location", "spec", spec, "err", err)
					return err
				}

				n, err := nodeFactory.NodeFor(nodeID, location)
				if err != nil {
					logger.Error("Failed to create node", "spec", spec, "err", err)
					return err
				}

				if err := coord.AddNode(n); err != nil {
					logger.Error("Failed to register node", "spec", spec, "err", err)
					return err
				}
			}

			logger.Info("Coordinator initialized",
				"replicationFactor", replicationFactor,
				"nodes", coord.NodeCount())

			handler := httpserver.NewHandler(coord, nodeFactory, logger)

			cfg := flags.ConfigureServer(cCtx, logger, listenAddr)
			server, err := httpserver.New(cfg, handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			logger.Info("Starting server")
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// parseNodeSpec splits an id=location pair; a bare id defaults to an
// in-memory engine.
func parseNodeSpec(spec string) (interfaces.NodeID, string, error) {
	if spec == "" {
		return "", "", fmt.Errorf("empty node specification")
	}

	id, location, found := strings.Cut(spec, "=")
	if id == "" {
		return "", "", fmt.Errorf("missing node id in %q", spec)
	}
	if !found || location == "" {
		location = "mem://" + id
	}
	return interfaces.NodeID(id), location, nil
}
