package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/blockdrop/internal/api/request"
	"github.com/mcoot/blockdrop/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameAutoplayCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameAbandonCmd())

	return cmd
}

func gamePath(id, suffix string) string {
	return "/api/v1/games/" + url.PathEscape(id) + suffix
}

func newGameCreateCmd() *cobra.Command {
	var req request.CreateGameRequest

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"new"},
		Short:   "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Rows, "rows", 0, "Board rows (default: server setting)")
	cmd.Flags().IntVar(&req.Cols, "cols", 0, "Board columns (default: server setting)")
	cmd.Flags().StringVar(&req.Preset, "preset", "", "Preset starting board")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Get(gamePath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	var rotations int

	cmd := &cobra.Command{
		Use:   "place <id> <column>",
		Short: "Drop the current piece at a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid column: %w", err)
			}

			req := request.PlaceRequest{Rotations: rotations, Column: &column}
			var result response.PlaceResponse

			if err := client.Post(gamePath(args[0], "/place"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&rotations, "rotations", "r", 0, "Clockwise rotations before dropping (0-3)")

	return cmd
}

func newGameAutoplayCmd() *cobra.Command {
	var req request.AutoplayRequest

	cmd := &cobra.Command{
		Use:   "autoplay <id>",
		Short: "Let a bot place pieces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.AutoplayResponse

			if err := client.Post(gamePath(args[0], "/autoplay"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Strategy, "strategy", "", "Bot strategy: greedy, random (default greedy)")
	cmd.Flags().IntVarP(&req.Pieces, "pieces", "n", 1, "Pieces to place (0 plays until the game ends or the server limit)")

	return cmd
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Restore the starting board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Post(gamePath(args[0], "/reset"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0], "")); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Game abandoned")
			return nil
		},
	}
}
