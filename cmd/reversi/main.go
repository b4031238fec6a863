package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/stephentim/Reversi/internal/ai"
	"github.com/stephentim/Reversi/internal/config"
	"github.com/stephentim/Reversi/internal/othello"
	"github.com/stephentim/Reversi/internal/session"
)

func main() {
	blackFlag := flag.String("black", "human", "who controls black: human, ai-4, ai-5 or ai-6")
	whiteFlag := flag.String("white", "ai-5", "who controls white: human, ai-4, ai-5 or ai-6")
	boardFlag := flag.String("board", "", "start position as 32 hex chars, empty for the opening")
	turnFlag := flag.String("turn", "black", "who moves first on a custom board: black or white")
	seedFlag := flag.Uint64("seed", 0, "random seed for AI tie-breaking, 0 seeds from the clock")
	flag.Parse()

	config.SetLogLevel()

	black, err := session.ParsePlayerType(*blackFlag)
	if err != nil {
		log.Fatalf("invalid -black: %v", err)
	}

	white, err := session.ParsePlayerType(*whiteFlag)
	if err != nil {
		log.Fatalf("invalid -white: %v", err)
	}

	var options []session.Option

	if *boardFlag != "" {
		board, err := othello.NewBoardFromString(*boardFlag)
		if err != nil {
			log.Fatalf("invalid -board: %v", err)
		}

		turn, err := othello.ParsePiece(*turnFlag)
		if err != nil || !turn.IsPlayer() {
			log.Fatalf("invalid -turn: %q, must be black or white", *turnFlag)
		}

		options = append(options, session.WithStart(board, turn))
	}

	if *seedFlag != 0 {
		searcher := ai.NewSearcher(ai.WithRand(rand.New(rand.NewSource(*seedFlag))))
		options = append(options, session.WithSearcher(searcher))
	}

	sess := session.NewSession(black, white, options...)
	defer sess.Close()

	events, cancel := sess.Subscribe()
	defer cancel()

	run(sess, events)
}

func run(sess *session.Session, events <-chan session.Event) {
	reader := bufio.NewScanner(os.Stdin)

	render(sess.State())

	for {
		state := sess.State()

		if state.GameOver {
			announceResult(state)
			return
		}

		if humanTurn(state) {
			move, quit := promptMove(reader, state.CurrentPlayer)
			if quit {
				return
			}

			if err := sess.DropPiece(move.Row, move.Col); err != nil {
				fmt.Println(err)
				continue
			}
		}

		if !consumeEvents(events) {
			return
		}
	}
}

// consumeEvents renders events until the session settles on a human turn or
// the end of the game. It returns false when the event stream closes.
func consumeEvents(events <-chan session.Event) bool {
	for event := range events {
		switch event.Type {
		case session.EventAIThinking:
			if event.State.AIThinking {
				fmt.Printf("%s is thinking...\n", event.State.CurrentPlayer)
			}
		case session.EventMove:
			fmt.Printf("%s plays %s\n", event.Mover, event.Move.Field())
			if !event.State.GameOver && event.State.CurrentPlayer == event.Mover {
				fmt.Printf("%s passes\n", event.Mover.Opposite())
			}
			render(event.State)
		}

		if event.State.GameOver || humanTurn(event.State) {
			return true
		}
	}

	return false
}

// humanTurn reports whether the session is waiting for input from a human.
func humanTurn(state session.State) bool {
	return !state.AIThinking && playerTypeOf(state, state.CurrentPlayer) == session.Human
}

func playerTypeOf(state session.State, p othello.Piece) session.PlayerType {
	if p == othello.Black {
		return state.BlackPlayer
	}
	return state.WhitePlayer
}

func render(state session.State) {
	mover := state.CurrentPlayer
	if state.GameOver {
		mover = othello.Empty
	}

	for _, line := range state.Board.ASCIIArtLines(mover) {
		fmt.Println(line)
	}

	fmt.Printf("● black %d   ○ white %d\n", state.Counts.Black, state.Counts.White)
}

// promptMove reads a field like "d3" from stdin. The second return value is
// true when the user quits.
func promptMove(reader *bufio.Scanner, player othello.Piece) (othello.Move, bool) {
	for {
		fmt.Printf("%s> ", player)

		if !reader.Scan() {
			return othello.Move{}, true
		}

		input := strings.TrimSpace(strings.ToLower(reader.Text()))
		switch input {
		case "":
			continue
		case "q", "quit":
			return othello.Move{}, true
		}

		move, err := othello.MoveFromField(input)
		if err != nil {
			fmt.Println(err)
			continue
		}

		return move, false
	}
}

func announceResult(state session.State) {
	fmt.Printf("game over: black %d, white %d\n", state.Counts.Black, state.Counts.White)

	if state.Winner == othello.Draw {
		fmt.Println("the game is a draw")
		return
	}

	fmt.Printf("%s wins\n", state.Winner)
}
