package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/rand"

	"github.com/mandelsoft/datacontainer/pkg/container"
	"github.com/mandelsoft/datacontainer/pkg/relationship"
)

func Error(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

func main() {
	var config string = "relationship.yaml"
	var store string = "."
	var storeType string = container.StoreFilesystem
	var count int = 20
	var field string = "title"
	var seed int64 = time.Now().UnixNano()

	flags := pflag.NewFlagSet("dcfake", pflag.ExitOnError)

	flags.StringVarP(&config, "config", "c", config, "relationship configuration")
	flags.StringVarP(&store, "store", "s", store, "store directory or sqlite data source")
	flags.StringVarP(&storeType, "store-type", "t", storeType, "store type (filesystem, sqlite)")
	flags.IntVarP(&count, "count", "n", count, "number of models to create")
	flags.StringVarP(&field, "field", "f", field, "property getting a random name")
	flags.Int64Var(&seed, "seed", seed, "random seed")

	err := flags.Parse(os.Args[1:])
	if err != nil {
		Error("invalid arguments: %s", err)
	}

	spec, err := relationship.ReadSpecification(config, osfs.OsFs)
	if err != nil {
		Error("cannot read relationship configuration: %s", err)
	}
	sspec, err := container.StoreSpecification(storeType, store)
	if err != nil {
		Error("invalid store: %s", err)
	}
	dc, err := container.New(spec, sspec)
	if err != nil {
		Error("cannot create data container: %s", err)
	}
	defer dc.Close()

	rand.Seed(seed)
	g := NewGenerator(dc, field, seed)
	for i := 0; i < count; i++ {
		m, err := g.Create()
		if err != nil {
			Error("cannot create model: %s", err)
		}
		log.Info("created {{model}}", "model", m)
	}
}
