package cmd

import (
	"fmt"
	"net/http"

	"github.com/jsphweid/scorestream/constants"
	"github.com/jsphweid/scorestream/db"
	"github.com/jsphweid/scorestream/server"
	"github.com/spf13/cobra"
)

var serveDynamo bool

func init() {
	serveCmd.Flags().BoolVar(&serveDynamo, "dynamo", false, "keep score metadata in DynamoDB")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves stored scores over HTTP",
	Long:  `Serves stored scores over HTTP on SCORESTREAM_ADDR (default :8080).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := metadataStore()
		if err != nil {
			return err
		}
		addr := constants.GetServeAddr()
		fmt.Println("Running server on", addr, "...")
		return http.ListenAndServe(addr, server.New(store).Handler())
	},
}

func metadataStore() (db.MetadataStore, error) {
	if !serveDynamo {
		return db.NewMemoryStore(), nil
	}
	return db.NewDynamoStore()
}
