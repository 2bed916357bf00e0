package main

import (
	"fmt"
	"runtime"

	"github.com/appdotbuilder/simple-todo-4b0a/internal/dto"

	"github.com/spf13/cobra"
)

// Version can be set at build time using ldflags.
var Version = "dev"

var createDescription string

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.CreateTodoRequest{Title: args[0]}
		if cmd.Flags().Changed("description") {
			req.Description = &createDescription
		}
		var t dto.TodoResponse
		if err := doJSON("POST", "/todos", req, &t); err != nil {
			return err
		}
		printTodo(t)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all todos, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp dto.ListTodosResponse
		if err := doJSON("GET", "/todos", nil, &resp); err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			fmt.Println("no todos")
			return nil
		}
		for _, t := range resp.Items {
			printTodo(t)
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		var t *dto.TodoResponse
		if err := doJSON("GET", fmt.Sprintf("/todos/%d", id), nil, &t); err != nil {
			return err
		}
		if t == nil {
			fmt.Printf("todo #%d not found\n", id)
			return nil
		}
		printTodo(*t)
		return nil
	},
}

var (
	updateTitle       string
	updateDescription string
	clearDescription  bool
	updateCompleted   bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Partially update a todo",
	Long: `Only the flags you pass are applied; everything else keeps its
stored value. --clear-description removes the description entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		// Built as a map so absent flags produce absent JSON keys and
		// --clear-description produces an explicit null.
		patch := map[string]interface{}{}
		if cmd.Flags().Changed("title") {
			patch["title"] = updateTitle
		}
		if clearDescription {
			patch["description"] = nil
		} else if cmd.Flags().Changed("description") {
			patch["description"] = updateDescription
		}
		if cmd.Flags().Changed("completed") {
			patch["completed"] = updateCompleted
		}
		var t *dto.TodoResponse
		if err := doJSON("PATCH", fmt.Sprintf("/todos/%d", id), patch, &t); err != nil {
			return err
		}
		if t == nil {
			fmt.Printf("todo #%d not found\n", id)
			return nil
		}
		printTodo(*t)
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		patch := map[string]interface{}{"completed": true}
		var t *dto.TodoResponse
		if err := doJSON("PATCH", fmt.Sprintf("/todos/%d", id), patch, &t); err != nil {
			return err
		}
		if t == nil {
			fmt.Printf("todo #%d not found\n", id)
			return nil
		}
		printTodo(*t)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		var resp dto.DeleteTodoResponse
		if err := doJSON("DELETE", fmt.Sprintf("/todos/%d", id), nil, &resp); err != nil {
			return err
		}
		if resp.Deleted {
			fmt.Printf("deleted todo #%d\n", id)
		} else {
			fmt.Printf("todo #%d not found\n", id)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("todoctl version %s\n", Version)
		fmt.Printf("  Go version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "todo description")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().BoolVar(&clearDescription, "clear-description", false, "remove the description")
	updateCmd.Flags().BoolVar(&updateCompleted, "completed", false, "completed state")
}
