package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkoster/hireboard/internal/config"
	"github.com/mkoster/hireboard/internal/questions"
	"github.com/mkoster/hireboard/internal/store"
)

var recruiterFlag string

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage interview questions from the terminal",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the recruiter's questions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withManager(cmd.Context(), func(ctx context.Context, m *questions.Manager, recruiterID uuid.UUID) error {
			list, err := m.List(ctx, recruiterID)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("no questions yet")
				return nil
			}
			for _, q := range list {
				fmt.Printf("%s  [%d] %s\n", q.ID, q.OrderIndex, q.Text)
			}
			return nil
		})
	},
}

var questionsAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a question to the most recent interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(cmd.Context(), func(ctx context.Context, m *questions.Manager, recruiterID uuid.UUID) error {
			list, err := m.List(ctx, recruiterID)
			if err != nil {
				return err
			}
			_, created, err := m.Add(ctx, list, recruiterID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("added %s\n", created.ID)
			return nil
		})
	},
}

var questionsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("not a question id: %w", err)
		}

		confirm := promptui.Select{
			Label: fmt.Sprintf("Delete question %s?", id),
			Items: []string{"Yes", "No"},
		}
		_, answer, err := confirm.Run()
		if err != nil {
			return err
		}
		if answer != "Yes" {
			fmt.Println("aborted")
			return nil
		}

		return withManager(cmd.Context(), func(ctx context.Context, m *questions.Manager, recruiterID uuid.UUID) error {
			list, err := m.List(ctx, recruiterID)
			if err != nil {
				return err
			}
			if _, err := m.Remove(ctx, list, id); err != nil {
				return err
			}
			fmt.Println("deleted")
			return nil
		})
	},
}

func init() {
	questionsCmd.PersistentFlags().StringVar(&recruiterFlag, "recruiter", "", "recruiter UUID to act as (required)")
	_ = questionsCmd.MarkPersistentFlagRequired("recruiter")

	questionsCmd.AddCommand(questionsListCmd, questionsAddCmd, questionsRmCmd)
	rootCmd.AddCommand(questionsCmd)
}

// withManager builds the store-backed question manager and runs fn with
// the recruiter id from --recruiter.
func withManager(ctx context.Context, fn func(context.Context, *questions.Manager, uuid.UUID) error) error {
	recruiterID, err := uuid.Parse(recruiterFlag)
	if err != nil {
		return fmt.Errorf("not a recruiter id: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	backend, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	collections := store.NewCollections(backend)
	manager := questions.NewManager(collections, log)

	if err := fn(ctx, manager, recruiterID); err != nil {
		log.Error("questions command failed", zap.Error(err))
		return err
	}
	return nil
}
