// Command mockext runs the external provider mock, a stand-in for the real
// cadastral data source during local development.
package main

import (
	"flag"
	"log"

	"github.com/dmitrijs2005/cadastr/internal/mockext"
)

func main() {

	addr := flag.String("a", ":8001", "address and port to run the provider mock")
	flag.Parse()

	app := mockext.NewApp()

	if err := app.Listen(*addr); err != nil {
		log.Fatalf("%v", err)
	}
}
