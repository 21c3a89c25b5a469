// Package uci implements the UCI (Universal Chess Interface) command
// loop: reading engine-directed commands from stdin, driving the
// search core, and writing info/bestmove responses to stdout. It is
// the glue collaborator the search core is consumed by; it owns no
// search logic of its own.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"zugzwang/board"
	"zugzwang/book"
	"zugzwang/engine"
)

const (
	engineName   = "Zugzwang"
	engineAuthor = "the zugzwang project"
)

var bookRNG = rand.New(rand.NewSource(1))

// Loop owns the engine state and opening book across the whole UCI
// session, mirroring the one-Engine-per-process-lifetime contract the
// search core expects.
type Loop struct {
	eng *engine.Engine
	pos board.Position
	ob  *book.Book

	stopCh chan struct{}
	done   chan struct{}

	log zerolog.Logger
	out io.Writer
}

// NewLoop builds a UCI loop writing responses to out and logging
// diagnostics through log. The starting position is the standard
// initial position until a "position" command says otherwise.
func NewLoop(out io.Writer, log zerolog.Logger) *Loop {
	return &Loop{
		eng: engine.NewEngine(log),
		pos: board.CreatePositionFormFEN(board.InitialPosition),
		log: log,
		out: out,
	}
}

// Run reads commands from in until EOF or "quit", dispatching each
// line to the matching handler. Malformed input is a protocol error:
// it is logged and the loop continues, per the engine's error
// taxonomy (search/cancellation errors never reach this layer).
func (l *Loop) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if l.dispatch(line) {
			return nil
		}
	}
	return scanner.Err()
}

// dispatch handles one input line. It returns true when the loop
// should terminate (a "quit" command).
func (l *Loop) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		l.handleUCI()
	case "isready":
		l.handleIsReady()
	case "ucinewgame":
		l.eng.NewGame()
	case "setoption":
		l.handleSetOption(args)
	case "position":
		if err := l.handlePosition(args); err != nil {
			l.protocolError(err)
		}
	case "go":
		l.handleGo(args)
	case "stop":
		l.handleStop()
	case "ponderhit":
		// Pondering is not implemented; nothing to do.
	case "quit":
		l.handleStop()
		return true
	case "debug":
		// Accepted and ignored: no separate debug log stream.
	default:
		l.protocolError(errors.Errorf("unrecognised command %q", cmd))
	}
	return false
}

func (l *Loop) reply(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// protocolError writes a single diagnostic line and continues the
// loop, per the error taxonomy: malformed UCI input is never fatal.
func (l *Loop) protocolError(err error) {
	l.log.Error().Err(err).Msg("uci: protocol error")
	l.reply("info string error: %s", err)
}

func (l *Loop) handleUCI() {
	l.reply("id name %s", engineName)
	l.reply("id author %s", engineAuthor)
	l.reply("option name Hash type spin default %d min 1 max %d", engine.DefaultHashSizeMB, engine.MaxHashSizeMB)
	l.reply("option name OwnBook type check default false")
	l.reply("option name BookFile type string default <empty>")
	l.reply("uciok")
}

func (l *Loop) handleIsReady() {
	l.reply("readyok")
}

func (l *Loop) handleSetOption(args []string) {
	name, value, ok := parseSetOption(args)
	if !ok {
		l.protocolError(errors.Errorf("malformed setoption: %q", strings.Join(args, " ")))
		return
	}
	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			l.protocolError(errors.Wrapf(err, "setoption Hash value %q", value))
			return
		}
		l.eng.SetHashSize(mb)
	case "ownbook":
		l.eng.OwnBook = strings.EqualFold(value, "true")
	case "bookfile":
		b, err := book.LoadFromFile(value)
		if err != nil {
			l.protocolError(errors.Wrapf(err, "setoption BookFile %q", value))
			return
		}
		l.ob = b
	default:
		l.log.Warn().Str("option", name).Msg("uci: unrecognised option, ignoring")
	}
}

// parseSetOption extracts the name/value pair from a "setoption name
// <name> value <value>" argument list. The name and value may each
// contain spaces, so this walks token-by-token rather than indexing
// fixed positions.
func parseSetOption(args []string) (name, value string, ok bool) {
	var nameTokens, valueTokens []string
	target := &nameTokens
	for _, tok := range args {
		switch strings.ToLower(tok) {
		case "name":
			target = &nameTokens
			continue
		case "value":
			target = &valueTokens
			continue
		}
		*target = append(*target, tok)
	}
	if len(nameTokens) == 0 {
		return "", "", false
	}
	return strings.Join(nameTokens, " "), strings.Join(valueTokens, " "), true
}

// handlePosition implements "position [startpos|fen <fen>] [moves
// <m1> <m2> ...]". Moves are UCI long-algebraic and are matched
// against the legal moves of the position reached so far, rather than
// decoded blindly, so a bad move in the list is caught as a protocol
// error instead of corrupting the board.
func (l *Loop) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position: missing startpos/fen")
	}

	var pos board.Position
	i := 0
	switch args[0] {
	case "startpos":
		pos = board.CreatePositionFormFEN(board.InitialPosition)
		i = 1
	case "fen":
		end := len(args)
		if j := indexOf(args, "moves"); j >= 0 {
			end = j
		}
		if end <= 1 {
			return errors.New("position fen: missing FEN string")
		}
		fen := strings.Join(args[1:end], " ")
		parsed, err := board.TryParseFEN(fen)
		if err != nil {
			return errors.Wrap(err, "position fen")
		}
		pos = parsed
		i = end
	default:
		return errors.Errorf("position: expected startpos/fen, got %q", args[0])
	}

	l.eng.Repetition.Reset()
	l.eng.Repetition.Push(pos.Hash)

	if i < len(args) && args[i] == "moves" {
		for _, uciMove := range args[i+1:] {
			move, ok := matchLegalMove(&pos, uciMove)
			if !ok {
				return errors.Errorf("position: illegal or malformed move %q", uciMove)
			}
			pos.MakeMove(move)
			l.eng.Repetition.Push(pos.Hash)
		}
	}

	l.pos = pos
	return nil
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// matchLegalMove resolves a UCI long-algebraic move string (e.g.
// "e2e4", "a7a8q") against the legal moves of pos, since a bare
// from/to/promotion triple doesn't carry captured-piece or flag
// information on its own.
func matchLegalMove(pos *board.Position, uciMove string) (board.Move, bool) {
	uciMove = strings.ToLower(strings.TrimSpace(uciMove))
	for _, m := range pos.GenerateLegalMoves() {
		if m.ToUCI() == uciMove {
			return m, true
		}
	}
	return board.Move{}, false
}

// handleGo parses the "go" parameters, probes the opening book when
// enabled, and otherwise runs iterative deepening in a goroutine so
// that a subsequent "stop" command can interrupt it.
func (l *Loop) handleGo(args []string) {
	params := parseGoParams(args)

	if l.eng.OwnBook && l.ob != nil {
		hash := book.PolyglotHash(l.pos)
		if mv, ok := l.ob.ProbeRandom(hash, bookRNG); ok {
			if legal, ok := matchLegalMove(&l.pos, mv.ToUCI()); ok {
				l.reply("bestmove %s", legal.ToUCI())
				return
			}
		}
	}

	timeLimit := engine.AllocateTime(params, l.pos.WhiteMove)
	if params.Depth > 0 {
		timeLimit = 24 * time.Hour
	}

	l.stopCh = make(chan struct{})
	l.done = make(chan struct{})
	stopCh := l.stopCh
	done := l.done

	pos := l.pos
	minDepth := 2
	if params.Depth > 0 && params.Depth < engine.TranspositionMaxDepth {
		minDepth = params.Depth
	}

	go func() {
		defer close(done)
		opts := engine.SearchOptions{
			MinDepth:  minDepth,
			TimeLimit: timeLimit,
			Strict:    params.MoveTime > 0 || params.Infinite,
			Stop:      stopCh,
			OnInfo: func(info engine.SearchInfo) {
				l.emitInfo(info)
			},
		}
		best, _, _ := l.eng.FindBestMove(&pos, opts)
		if best == (board.Move{}) {
			l.reply("bestmove 0000")
			return
		}
		// FindBestMove leaves pos unchanged (every explored move is
		// made and unmade in balance), so the hash to record as played
		// is the one reached by actually applying best, not pos.Hash
		// as returned.
		pos.MakeMove(best)
		l.eng.PlayMove(pos.Hash)
		l.reply("bestmove %s", best.ToUCI())
	}()
}

func (l *Loop) handleStop() {
	if l.stopCh == nil {
		return
	}
	select {
	case <-l.stopCh:
	default:
		close(l.stopCh)
	}
	if l.done != nil {
		<-l.done
	}
}

func (l *Loop) emitInfo(info engine.SearchInfo) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d ", info.Depth)
	if info.IsMate {
		fmt.Fprintf(&sb, "score mate %d ", info.MateIn)
	} else {
		fmt.Fprintf(&sb, "score cp %d ", info.Score)
	}
	fmt.Fprintf(&sb, "nodes %d nps %d time %d",
		info.Nodes, info.NPS, info.Time.Milliseconds())
	if len(info.PV) > 0 {
		sb.WriteString(" pv")
		for _, m := range info.PV {
			sb.WriteString(" ")
			sb.WriteString(m.ToUCI())
		}
	}
	l.reply("%s", sb.String())
}

// parseGoParams builds an engine.GoParams from "go" command tokens.
func parseGoParams(args []string) engine.GoParams {
	var p engine.GoParams
	for i := 0; i < len(args); i++ {
		tok := args[i]
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}
		switch tok {
		case "wtime":
			p.WTime = parseMillis(next())
		case "btime":
			p.BTime = parseMillis(next())
		case "winc":
			p.WInc = parseMillis(next())
		case "binc":
			p.BInc = parseMillis(next())
		case "movestogo":
			p.MovesToGo, _ = strconv.Atoi(next())
		case "movetime":
			p.MoveTime = parseMillis(next())
		case "depth":
			p.Depth, _ = strconv.Atoi(next())
		case "infinite":
			p.Infinite = true
		case "ponder":
			// Pondering isn't implemented; treat as a normal search.
		}
	}
	return p
}

func parseMillis(s string) time.Duration {
	n, _ := strconv.Atoi(s)
	return time.Duration(n) * time.Millisecond
}
