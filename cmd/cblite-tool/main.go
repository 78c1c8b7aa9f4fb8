// cblite-tool is a small maintenance CLI over a Couchbase Lite database:
// inspect a database, read and write documents, and run one-shot
// replications against a Sync Gateway.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	cblite "github.com/couchbaselabs/cblite-go"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "cblite-tool:", err)
		os.Exit(1)
	}
}

func usage() error {
	fmt.Fprintln(os.Stderr, `usage: cblite-tool <command> [flags]

commands:
  info     print database name, path and document count
  ls       list scopes and collections
  get      print a document as JSON
  put      store a document from a JSON body
  rm       delete a document
  compact  run database compaction
  sync     run a one-shot replication against a Sync Gateway URL

run 'cblite-tool <command> --help' for command flags`)
	return fmt.Errorf("missing or unknown command")
}

func run(args []string) error {
	if err := cblite.LoadError(); err != nil {
		return err
	}
	if len(args) == 0 {
		return usage()
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "info":
		return cmdInfo(rest)
	case "ls":
		return cmdList(rest)
	case "get":
		return cmdGet(rest)
	case "put":
		return cmdPut(rest)
	case "rm":
		return cmdRemove(rest)
	case "compact":
		return cmdCompact(rest)
	case "sync":
		return cmdSync(rest)
	}
	return usage()
}

// databaseFlags adds the flags shared by every command and returns getters
// for them.
func databaseFlags(fs *flag.FlagSet) (name, dir *string) {
	name = fs.StringP("database", "d", "", "database name (required)")
	dir = fs.String("dir", "", "database directory (default: platform default)")
	return name, dir
}

func openFromFlags(name, dir string) (*cblite.Database, error) {
	if name == "" {
		return nil, fmt.Errorf("--database is required")
	}
	return cblite.OpenDatabase(name, cblite.DatabaseConfiguration{Directory: dir})
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	name, dir := databaseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openFromFlags(*name, *dir)
	if err != nil {
		return err
	}
	defer db.Release()
	defer db.Close()

	fmt.Printf("name:      %s\n", db.Name())
	fmt.Printf("path:      %s\n", db.Path())
	fmt.Printf("documents: %d\n", db.Count())
	return nil
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	name, dir := databaseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openFromFlags(*name, *dir)
	if err != nil {
		return err
	}
	defer db.Release()
	defer db.Close()

	scopes, err := db.ScopeNames()
	if err != nil {
		return err
	}
	for _, scope := range scopes {
		collections, err := db.CollectionNames(scope)
		if err != nil {
			return err
		}
		for _, colName := range collections {
			col, err := db.Collection(colName, scope)
			if err != nil {
				return err
			}
			fmt.Printf("%s.%s\t%d documents\n", scope, colName, col.Count())
			col.Release()
		}
	}
	return nil
}

func cmdGet(args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	name, dir := databaseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: get --database <name> <doc-id>")
	}

	db, err := openFromFlags(*name, *dir)
	if err != nil {
		return err
	}
	defer db.Release()
	defer db.Close()

	doc, err := db.GetDocument(fs.Arg(0))
	if err != nil {
		return err
	}
	defer doc.Release()
	fmt.Println(doc.ToJSON())
	return nil
}

func cmdPut(args []string) error {
	fs := flag.NewFlagSet("put", flag.ExitOnError)
	name, dir := databaseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: put --database <name> <doc-id> <json>")
	}

	db, err := openFromFlags(*name, *dir)
	if err != nil {
		return err
	}
	defer db.Release()
	defer db.Close()

	doc, err := db.GetDocument(fs.Arg(0))
	if errors.Is(err, cblite.ErrNotFound) {
		doc = cblite.NewDocumentWithID(fs.Arg(0))
	} else if err != nil {
		return err
	}
	defer doc.Release()

	if err := doc.SetJSON(fs.Arg(1)); err != nil {
		return err
	}
	return db.SaveDocument(doc)
}

func cmdRemove(args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	name, dir := databaseFlags(fs)
	purge := fs.Bool("purge", false, "purge instead of delete (leaves no tombstone, does not replicate)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: rm --database <name> [--purge] <doc-id>")
	}

	db, err := openFromFlags(*name, *dir)
	if err != nil {
		return err
	}
	defer db.Release()
	defer db.Close()

	if *purge {
		return db.PurgeDocumentByID(fs.Arg(0))
	}
	doc, err := db.GetDocument(fs.Arg(0))
	if err != nil {
		return err
	}
	defer doc.Release()
	return db.DeleteDocument(doc)
}

func cmdCompact(args []string) error {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	name, dir := databaseFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openFromFlags(*name, *dir)
	if err != nil {
		return err
	}
	defer db.Release()
	defer db.Close()

	return db.PerformMaintenance(cblite.MaintenanceCompact)
}

func cmdSync(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	name, dir := databaseFlags(fs)
	url := fs.StringP("url", "u", "", "Sync Gateway endpoint, e.g. wss://host:4984/db (required)")
	user := fs.String("user", "", "basic auth username")
	pass := fs.String("pass", "", "basic auth password")
	direction := fs.String("direction", "pushandpull", "push, pull or pushandpull")
	timeout := fs.Duration("timeout", 5*time.Minute, "overall replication timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *url == "" {
		return fmt.Errorf("--url is required")
	}

	var replType cblite.ReplicatorType
	switch *direction {
	case "push":
		replType = cblite.Push
	case "pull":
		replType = cblite.Pull
	case "pushandpull":
		replType = cblite.PushAndPull
	default:
		return fmt.Errorf("unknown direction %q", *direction)
	}

	db, err := openFromFlags(*name, *dir)
	if err != nil {
		return err
	}
	defer db.Release()
	defer db.Close()

	endpoint, err := cblite.NewURLEndpoint(*url)
	if err != nil {
		return err
	}
	config := cblite.ReplicatorConfiguration{
		Database:       db,
		Endpoint:       endpoint,
		ReplicatorType: replType,
	}
	if *user != "" {
		config.Authenticator = cblite.NewPasswordAuthenticator(*user, *pass)
	}

	repl, err := cblite.NewReplicator(config)
	if err != nil {
		return err
	}
	defer repl.Release()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	done := make(chan error, 1)
	token := repl.AddChangeListener(func(_ *cblite.Replicator, status cblite.ReplicatorStatus) {
		fmt.Printf("replicator: %v %.0f%% (%d documents)\n",
			status.Activity, float64(status.Progress.Complete)*100, status.Progress.DocumentCount)
		if status.Activity == cblite.ActivityStopped {
			done <- status.Err
		}
	})
	defer token.Remove()

	repl.Start(false)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		_ = repl.StopAndWait(stopCtx)
		return ctx.Err()
	}
}
