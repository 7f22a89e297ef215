package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/blockdrop/internal/api/request"
	"github.com/mcoot/blockdrop/internal/api/response"
)

func newAdviseCmd() *cobra.Command {
	var (
		req       request.AdviseRequest
		boardFile string
		rows      int
		cols      int
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Ask where a piece should go",
		Long: `Ask the server where a piece should be dropped.

The board is read from --board (one row per line, top row first, '.' for
empty and any piece letter or '#' for filled; "-" reads standard input).
Without --board an empty board of --rows by --cols is used.`,
		Example: `  blockdrop advise --piece T --rows 20 --cols 10
  blockdrop advise --piece I --board board.txt --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case boardFile == "-":
				board, err := readBoard(cmd.InOrStdin())
				if err != nil {
					return err
				}
				req.Board = board
			case boardFile != "":
				f, err := os.Open(boardFile)
				if err != nil {
					return fmt.Errorf("failed to open board: %w", err)
				}
				defer func() { _ = f.Close() }()
				board, err := readBoard(f)
				if err != nil {
					return err
				}
				req.Board = board
			default:
				if rows <= 0 || cols <= 0 {
					return fmt.Errorf("--rows and --cols must be positive when no --board is given")
				}
				req.Board = make([]string, rows)
				for i := range req.Board {
					req.Board[i] = strings.Repeat(".", cols)
				}
			}

			var result response.AdviseResponse
			if err := client.Post("/api/v1/advise", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Piece, "piece", "p", "", "Piece letter: I, O, T, S, Z, J or L (required)")
	cmd.Flags().StringVar(&req.Strategy, "strategy", "", "Strategy: greedy, random (default greedy)")
	cmd.Flags().BoolVar(&req.Explain, "explain", false, "Also list every legal placement the advisor considered")
	cmd.Flags().StringVarP(&boardFile, "board", "b", "", `Board file ("-" for stdin)`)
	cmd.Flags().IntVar(&rows, "rows", 30, "Rows of the empty board used without --board")
	cmd.Flags().IntVar(&cols, "cols", 15, "Columns of the empty board used without --board")
	_ = cmd.MarkFlagRequired("piece")

	return cmd
}

// readBoard reads board rows, skipping blank lines
func readBoard(r io.Reader) ([]string, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("board is empty")
	}
	return rows, nil
}
