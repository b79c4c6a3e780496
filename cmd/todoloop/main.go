package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"todoloop/internal/model"
	"todoloop/internal/server"
	"todoloop/internal/storage"
	"todoloop/internal/update"
	"todoloop/internal/views"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "todoloop: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	root := &cobra.Command{
		Use:   "todoloop",
		Short: "A tiny to-do list with local-file and REST-backed stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			program := tea.NewProgram(update.NewModel(newStore(cfg)), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
	root.PersistentFlags().StringVar(&cfg.DataFile, "data", cfg.DataFile, "path of the local JSON data file")
	root.PersistentFlags().StringVar(&cfg.APIURL, "api", cfg.APIURL, "base URL of a todoloop server; switches to the remote store")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the todo REST server backed by SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := storage.OpenSQLite(cfg.DBPath)
			if err != nil {
				return err
			}
			defer repo.Close()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Printf("todoloop server listening on %s\n", cfg.ListenAddr)
			return server.New(repo).ListenAndServe(ctx, cfg.ListenAddr)
		},
	}
	serve.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "path of the SQLite database")
	serve.Flags().StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "listen address")

	add := &cobra.Command{
		Use:   "add <content...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore(cfg)
			ctx := cmd.Context()
			if _, err := store.Load(ctx); err != nil {
				return err
			}
			changed, err := store.Add(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !changed {
				return errors.New("nothing to add: content is empty")
			}
			fmt.Println("added")
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore(cfg)
			todos, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(renderList(todos))
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo's completion by id or unique id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore(cfg)
			ctx := cmd.Context()
			if _, err := store.Load(ctx); err != nil {
				return err
			}
			todo, err := resolveID(store.Todos(), args[0])
			if err != nil {
				return err
			}
			if _, err := store.Toggle(ctx, todo.ID, !todo.IsCompleted); err != nil {
				return err
			}
			fmt.Println("toggled", todo.Content)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo by id or unique id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore(cfg)
			ctx := cmd.Context()
			if _, err := store.Load(ctx); err != nil {
				return err
			}
			todo, err := resolveID(store.Todos(), args[0])
			if err != nil {
				return err
			}
			if _, err := store.Delete(ctx, todo.ID); err != nil {
				return err
			}
			fmt.Println("deleted", todo.Content)
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete every completed todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore(cfg)
			ctx := cmd.Context()
			if _, err := store.Load(ctx); err != nil {
				return err
			}
			changed, err := store.ClearCompleted(ctx)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Println("no completed todos")
				return nil
			}
			fmt.Println("cleared completed")
			return nil
		},
	}

	root.AddCommand(serve, add, list, done, rm, clear)
	return root
}

func newStore(cfg update.RuntimeConfig) storage.Store {
	if strings.TrimSpace(cfg.APIURL) != "" {
		return storage.NewRESTStore(cfg.APIURL)
	}
	return storage.NewFileStore(cfg.DataFile)
}

func renderList(todos []model.Todo) string {
	var b strings.Builder
	for _, t := range todos {
		box := "[ ]"
		if t.IsCompleted {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%-8.8s %s %s\n", t.ID, box, t.Content)
	}
	b.WriteString(views.ActiveCountLabel(model.ActiveCount(todos)))
	return b.String()
}

func resolveID(todos []model.Todo, prefix string) (model.Todo, error) {
	var found model.Todo
	matches := 0
	for _, t := range todos {
		if strings.HasPrefix(t.ID, prefix) {
			found = t
			matches++
		}
	}
	switch matches {
	case 0:
		return model.Todo{}, fmt.Errorf("no todo matches id %q", prefix)
	case 1:
		return found, nil
	default:
		return model.Todo{}, fmt.Errorf("id %q is ambiguous (%d matches)", prefix, matches)
	}
}
