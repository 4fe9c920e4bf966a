package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

func (a *App) printTaskError(err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		printlnFn("You are not allowed to do that")
	case errors.Is(err, common.ErrorNotFound):
		printlnFn("No such task")
	default:
		printlnFn("Error:", err.Error())
	}
}

func (a *App) listTasks(ctx context.Context, status string) error {
	var (
		list []models.Task
		err  error
	)
	if status == "" {
		list, err = a.taskService.List(ctx)
	} else {
		list, err = a.taskService.ListByStatus(ctx, status)
	}
	if err != nil {
		a.printTaskError(err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No tasks")
		return nil
	}
	for _, t := range list {
		printlnFn(fmt.Sprintf("%s  [%s]  %s", t.ID, t.Status, t.Title))
	}
	return nil
}

func (a *App) addTask(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter task title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	var assigneeID int64
	if a.sessions.IsCurrentUserAdmin(ctx) {
		raw, err := getSimpleText(a.reader, "Assignee user id (empty for yourself)", os.Stdout)
		if err != nil {
			return err
		}
		if raw != "" {
			assigneeID, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				printlnFn("Invalid user id:", raw)
				return nil
			}
		}
	}

	task, err := a.taskService.Create(ctx, title, description, assigneeID)
	if err != nil {
		a.printTaskError(err)
		return err
	}
	printlnFn("Task created:", task.ID)
	return nil
}

func (a *App) setTaskStatus(ctx context.Context, id, status string) error {
	task, err := a.taskService.UpdateStatus(ctx, id, status)
	if err != nil {
		a.printTaskError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Task %s is now %s", task.ID, task.Status))
	return nil
}

func (a *App) editTask(ctx context.Context, id string) error {
	title, err := getSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "New description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if title == "" && description == "" {
		printlnFn("Nothing changed")
		return nil
	}

	task, err := a.taskService.Edit(ctx, id, title, description)
	if err != nil {
		a.printTaskError(err)
		return err
	}
	printlnFn("Task updated:", task.Title)
	return nil
}

func (a *App) deleteTask(ctx context.Context, id string) error {
	if err := a.taskService.Delete(ctx, id); err != nil {
		a.printTaskError(err)
		return err
	}
	printlnFn("Task deleted")
	return nil
}

func (a *App) showTask(ctx context.Context, id string) error {
	t, err := a.taskService.Get(ctx, id)
	if err != nil {
		a.printTaskError(err)
		return err
	}
	printlnFn("Title: " + t.Title)
	printlnFn("Status: " + t.Status)
	if t.Description != "" {
		printlnFn("Description: " + t.Description)
	}
	printlnFn("Assignee: " + strconv.FormatInt(t.AssignedUserID, 10))
	return a.listComments(ctx, id)
}

func (a *App) searchTasks(ctx context.Context, query string) error {
	list, err := a.taskService.Search(ctx, query)
	if err != nil {
		a.printTaskError(err)
		return err
	}
	if len(list) == 0 {
		printlnFn("No tasks match")
		return nil
	}
	for _, t := range list {
		printlnFn(fmt.Sprintf("%s  [%s]  %s", t.ID, t.Status, t.Title))
	}
	return nil
}

func (a *App) addComment(ctx context.Context, id string) error {
	text, err := GetMultiline(a.reader, "Enter comment", os.Stdout)
	if err != nil {
		return err
	}
	if _, err := a.taskService.AddComment(ctx, id, text); err != nil {
		a.printTaskError(err)
		return err
	}
	printlnFn("Comment added")
	return nil
}

func (a *App) listComments(ctx context.Context, id string) error {
	comments, err := a.taskService.Comments(ctx, id)
	if err != nil {
		a.printTaskError(err)
		return err
	}
	for _, c := range comments {
		printlnFn(fmt.Sprintf("  %s  user %d: %s",
			c.CreatedAt.Local().Format("2006-01-02 15:04"), c.AuthorID, c.Text))
	}
	return nil
}
