package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/castornet/castor/api/clients"
	"github.com/castornet/castor/cmd/flags"
	"github.com/castornet/castor/interfaces"
)

func main() {
	app := &cli.App{
		Name:  "castor-client",
		Usage: "Interact with a castor blob store server",
		Flags: []cli.Flag{flags.ServerAddrFlag},
		Commands: []*cli.Command{
			{
				Name:      "add-node",
				Usage:     "Register a storage node",
				ArgsUsage: "<node-id> [location-uri]",
				Action: func(cCtx *cli.Context) error {
					if cCtx.NArg() < 1 {
						return fmt.Errorf("node-id argument is required")
					}
					nodeID := cCtx.Args().Get(0)
					location := cCtx.Args().Get(1)

					client := newClient(cCtx)
					if err := client.AddNode(nodeID, location); err != nil {
						return err
					}
					fmt.Printf("node %s added\n", nodeID)
					return nil
				},
			},
			{
				Name:      "remove-node",
				Usage:     "Remove a storage node",
				ArgsUsage: "<node-id>",
				Action: func(cCtx *cli.Context) error {
					if cCtx.NArg() < 1 {
						return fmt.Errorf("node-id argument is required")
					}
					nodeID := cCtx.Args().Get(0)

					client := newClient(cCtx)
					if err := client.RemoveNode(nodeID); err != nil {
						return err
					}
					fmt.Printf("node %s removed\n", nodeID)
					return nil
				},
			},
			{
				Name:      "store",
				Usage:     "Store a file's contents",
				ArgsUsage: "<path>",
				Action: func(cCtx *cli.Context) error {
					if cCtx.NArg() < 1 {
						return fmt.Errorf("path argument is required")
					}
					path := cCtx.Args().Get(0)

					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}

					client := newClient(cCtx)
					id, err := client.Store(path, data)
					if err != nil {
						return err
					}
					fmt.Println(id.String())
					return nil
				},
			},
			{
				Name:      "retrieve",
				Usage:     "Retrieve a payload by content ID and write it to stdout",
				ArgsUsage: "<content-id>",
				Action: func(cCtx *cli.Context) error {
					id, err := contentIDArg(cCtx)
					if err != nil {
						return err
					}

					client := newClient(cCtx)
					data, _, err := client.Retrieve(id)
					if err != nil {
						return err
					}
					_, err = os.Stdout.Write(data)
					return err
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a payload by content ID",
				ArgsUsage: "<content-id>",
				Action: func(cCtx *cli.Context) error {
					id, err := contentIDArg(cCtx)
					if err != nil {
						return err
					}

					client := newClient(cCtx)
					if err := client.Delete(id); err != nil {
						return err
					}
					fmt.Printf("content %s deleted\n", id)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newClient(cCtx *cli.Context) *clients.StorageClient {
	return &clients.StorageClient{ServerAddr: cCtx.String(flags.ServerAddrFlag.Name)}
}

func contentIDArg(cCtx *cli.Context) (interfaces.ContentID, error) {
	if cCtx.NArg() < 1 {
		return interfaces.ContentID{}, fmt.Errorf("content-id argument is required")
	}
	return interfaces.NewContentIDFromHex(cCtx.Args().Get(0))
}
