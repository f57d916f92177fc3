// Package replay records game sessions and re-simulates them headless.
// A recording holds the settings, seed and button inputs of every session;
// since the engine is deterministic for a seed, inputs alone reproduce a game.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/input"
)

// FormatVersion is bumped whenever the encoded layout changes
const FormatVersion = 1

// ErrVersion reports a recording written by an incompatible build
var ErrVersion = errors.New("unsupported recording version")

// Input is a button applied while the session tick counter read Tick
type Input struct {
	Tick   uint64       `msgpack:"t"`
	Button input.Button `msgpack:"b"`
}

// SessionLog is one game from start to game over, retry or exit
type SessionLog struct {
	Settings config.Settings `msgpack:"settings"`
	Seed     int64           `msgpack:"seed"`
	Inputs   []Input         `msgpack:"inputs"`

	Ticks   uint64         `msgpack:"ticks"`
	Score   int            `msgpack:"score"`
	Outcome engine.Outcome `msgpack:"outcome"`
}

// Recording is the file content
type Recording struct {
	Version  int          `msgpack:"version"`
	Sessions []SessionLog `msgpack:"sessions"`
}

// Recorder collects sessions; implements engine.Recorder
type Recorder struct {
	mu  sync.Mutex
	rec Recording
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{rec: Recording{Version: FormatVersion}}
}

// BeginSession opens a new session log
func (r *Recorder) BeginSession(settings config.Settings, seed int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Sessions = append(r.rec.Sessions, SessionLog{Settings: settings, Seed: seed})
}

// RecordInput appends a button to the open session
func (r *Recorder) RecordInput(tick uint64, b input.Button) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.rec.Sessions); n > 0 {
		s := &r.rec.Sessions[n-1]
		s.Inputs = append(s.Inputs, Input{Tick: tick, Button: b})
	}
}

// EndSession stores the final counters of the open session
func (r *Recorder) EndSession(ticks uint64, score int, outcome engine.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.rec.Sessions); n > 0 {
		s := &r.rec.Sessions[n-1]
		s.Ticks, s.Score, s.Outcome = ticks, score, outcome
	}
}

// Recording returns a deep copy of everything recorded so far
func (r *Recorder) Recording() Recording {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Recording{Version: r.rec.Version, Sessions: make([]SessionLog, len(r.rec.Sessions))}
	for i, s := range r.rec.Sessions {
		s.Inputs = append([]Input(nil), s.Inputs...)
		out.Sessions[i] = s
	}
	return out
}

// Save writes the recording to path
func (r *Recorder) Save(path string) error {
	rec := r.Recording()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay save: %w", err)
	}
	if err := Encode(f, &rec); err != nil {
		f.Close()
		return fmt.Errorf("replay save: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("replay save: %w", err)
	}
	return nil
}

// Encode writes rec as msgpack
func Encode(w io.Writer, rec *Recording) error {
	return msgpack.NewEncoder(w).Encode(rec)
}

// Decode reads a msgpack recording and checks its version
func Decode(rd io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(rd).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return &rec, nil
}

// Load reads a recording file
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay load: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
