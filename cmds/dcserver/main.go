package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/spf13/pflag"

	"github.com/mandelsoft/datacontainer/pkg/container"
	"github.com/mandelsoft/datacontainer/pkg/ctxutil"
	"github.com/mandelsoft/datacontainer/pkg/healthz"
	"github.com/mandelsoft/datacontainer/pkg/pool"
	"github.com/mandelsoft/datacontainer/pkg/relationship"
	"github.com/mandelsoft/datacontainer/pkg/server"
	"github.com/mandelsoft/datacontainer/pkg/service"
)

func Error(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

func main() {
	var port int
	var config string = "relationship.yaml"
	var store string = "."
	var storeType string = container.StoreFilesystem
	var level string = "info"
	var serveStore string
	var workers int = 1

	flags := pflag.NewFlagSet("dcserver", pflag.ExitOnError)

	flags.IntVarP(&port, "port", "p", 8080, "server port")
	flags.StringVarP(&config, "config", "c", config, "relationship configuration")
	flags.StringVarP(&store, "store", "s", store, "store directory or sqlite data source")
	flags.StringVarP(&storeType, "store-type", "t", storeType, "store type (filesystem, sqlite, memory)")
	flags.StringVarP(&level, "log-level", "L", level, "log level")
	flags.StringVarP(&serveStore, "serve-store", "S", "", "path prefix to serve the files of a filesystem store")
	flags.IntVarP(&workers, "renumber-workers", "w", workers, "number of background renumber workers (0 disables background renumbering)")

	err := flags.Parse(os.Args[1:])
	if err != nil {
		Error("invalid arguments: %s", err)
	}

	l, err := logging.ParseLevel(level)
	if err != nil {
		Error("invalid log level %q", level)
	}
	lctx := logging.DefaultContext()
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("datacontainer")))

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

	ctx := ctxutil.SignalContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer ctxutil.Cancel(ctx)

	srv := server.NewServer(port, 20*time.Second)
	access := service.New(dc.Collector(), dc.Paste(), "/dc")
	access.RegisterHandler(srv)

	var renumbered server.Syncher
	if workers > 0 {
		p := pool.NewPool("renumber", workers, access.RenumberSiblings)
		access.SetRenumberQueue(p)
		renumbered = p.Start(ctx)
	}

	healthz.Register("store", dc.Check)
	srv.HandleFunc("/healthz", healthz.Healthz)

	if serveStore != "" {
		if storeType != container.StoreFilesystem && storeType != "" {
			Error("only filesystem stores can be served")
		}
		h, err := server.NewDirectoryHandlerFor(store, serveStore)
		if err != nil {
			Error("cannot serve store: %s", err)
		}
		h.RegisterHandler(srv)
	}

	done, err := srv.Start(ctx)
	if err != nil {
		Error("cannot start server: %s", err)
	}
	log.Info("data container {{mode}} with root provider {{root}} ready", "mode", spec.Mode, "root", spec.RootProvider)
	done.Wait()
	if renumbered != nil {
		renumbered.Wait()
	}
	log.Info("server stopped")
}
