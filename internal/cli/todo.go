package cli

import (
	"fmt"
	"strings"
)

type TodoAddCmd struct {
	Text []string `arg:"" help:"Task text."`
}

func (c *TodoAddCmd) Run(ctx *Context) error {
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return fmt.Errorf("task text is required")
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}

	todos, err := ctx.Store.GetTodos()
	if err != nil {
		return err
	}
	todos = append(todos, text)
	if err := ctx.Store.SaveTodos(todos); err != nil {
		return err
	}

	fmt.Printf("Added: %s\n", text)
	return nil
}

type TodoListCmd struct{}

func (c *TodoListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	todos, err := ctx.Store.GetTodos()
	if err != nil {
		return err
	}

	if len(todos) == 0 {
		fmt.Println("No tasks yet.")
		return nil
	}

	for i, task := range todos {
		fmt.Printf("%2d. %s\n", i+1, task)
	}
	return nil
}

type TodoRmCmd struct {
	Number int `arg:"" help:"1-based task number to remove."`
}

func (c *TodoRmCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	todos, err := ctx.Store.GetTodos()
	if err != nil {
		return err
	}

	if c.Number < 1 || c.Number > len(todos) {
		return fmt.Errorf("no task number %d (have %d)", c.Number, len(todos))
	}

	removed := todos[c.Number-1]
	todos = append(todos[:c.Number-1], todos[c.Number:]...)
	if err := ctx.Store.SaveTodos(todos); err != nil {
		return err
	}

	fmt.Printf("Removed: %s\n", removed)
	return nil
}
