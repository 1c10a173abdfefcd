package experiment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rayaq-siddiqui/snake-rl/agent"
	"github.com/rayaq-siddiqui/snake-rl/environment"
	"github.com/rayaq-siddiqui/snake-rl/experiment/checkpointer"
	"github.com/rayaq-siddiqui/snake-rl/experiment/tracker"
	ts "github.com/rayaq-siddiqui/snake-rl/timestep"
	"github.com/rs/zerolog"
)

// Config configures a Session
type Config struct {
	// ModelPath is where the model is saved on a new all-time high
	ModelPath string

	// MaxEpisodes is the number of episodes Run plays before returning.
	// If MaxEpisodes <= 0, Run plays until its context is done.
	MaxEpisodes int
}

// StepResult is the outcome of a single step of a Session
type StepResult struct {
	Reward int
	Done   bool
	Score  int

	// Only set when Done
	Game         int     // Number of games played, including this one
	Record       int     // Best score of the session
	Mean         float64 // Mean score over the games of the session
	NewHighScore bool    // Whether the all-time high was beaten
}

// Session is an Experiment that trains an agent online for as long as
// it runs. After each game, the agent learns from replayed memory and
// the model is saved whenever the all-time high score is beaten.
type Session struct {
	id     string
	config Config

	env       environment.Environment
	agent     *agent.Agent
	highScore HighScoreStore

	trackers      tracker.Multi
	checkpointers []checkpointer.Checkpointer
	logger        zerolog.Logger

	record     int
	episodes   int // Episodes finished in this session
	totalScore int
}

// NewSession creates a new Session of an agent on env. Every log
// event of the session carries a unique session ID.
func NewSession(c Config, env environment.Environment, a *agent.Agent,
	highScore HighScoreStore, logger zerolog.Logger,
	t ...tracker.Tracker) *Session {
	id := uuid.NewString()

	return &Session{
		id:        id,
		config:    c,
		env:       env,
		agent:     a,
		highScore: highScore,
		trackers:  tracker.Multi(t),
		logger:    logger.With().Str("session", id).Logger(),
	}
}

// ID returns the unique ID of the session
func (s *Session) ID() string {
	return s.id
}

// Record returns the best score of the session
func (s *Session) Record() int {
	return s.record
}

// Register registers a tracker.Tracker with the Session so that game
// scores can be tracked and saved
func (s *Session) Register(t tracker.Tracker) {
	s.trackers = append(s.trackers, t)
}

// RegisterCheckpointer registers a checkpointer that is given the
// number of games played after every game
func (s *Session) RegisterCheckpointer(c checkpointer.Checkpointer) {
	s.checkpointers = append(s.checkpointers, c)
}

// Step runs a single tick of the game: the agent observes the state,
// acts, trains on the transition, and remembers it. If the game ends,
// the end of the episode is handled before returning.
func (s *Session) Step() (StepResult, error) {
	state := s.agent.Observe(s.env)
	action, err := s.agent.ChooseAction(state)
	if err != nil {
		return StepResult{}, fmt.Errorf("step: %v", err)
	}

	reward, done, score := s.env.Step(action)
	nextState := s.agent.Observe(s.env)

	t := ts.NewTransition(state, action, float64(reward), nextState, done)
	if err := s.agent.TrainShort(t); err != nil {
		return StepResult{}, fmt.Errorf("step: %v", err)
	}
	s.agent.Remember(t)

	result := StepResult{Reward: reward, Done: done, Score: score}
	if !done {
		return result, nil
	}
	return s.endEpisode(result)
}

// endEpisode resets the environment, trains on replayed memory, and
// updates the session record and the all-time high score
func (s *Session) endEpisode(result StepResult) (StepResult, error) {
	s.env.Reset()
	s.agent.AdvanceEpisode()
	if err := s.agent.TrainLong(); err != nil {
		return result, fmt.Errorf("step: %v", err)
	}

	allTimeHigh, err := s.highScore.Read()
	if err != nil {
		return result, fmt.Errorf("step: could not read high score: %w", err)
	}

	if result.Score > s.record {
		s.record = result.Score
	}
	if result.Score > allTimeHigh {
		if err := s.agent.SaveModel(s.config.ModelPath); err != nil {
			return result, fmt.Errorf("step: %v", err)
		}
		if err := s.highScore.Write(result.Score); err != nil {
			return result, fmt.Errorf("step: could not write high score: "+
				"%w", err)
		}
		result.NewHighScore = true
	}

	games := s.agent.Games()
	s.episodes++
	s.totalScore += result.Score
	result.Game = games
	result.Record = s.record
	result.Mean = float64(s.totalScore) / float64(s.episodes)

	s.logger.Info().
		Int("game", games).
		Int("score", result.Score).
		Int("record", s.record).
		Float64("mean", result.Mean).
		Float64("epsilon", s.agent.Epsilon()).
		Int("memory", s.agent.Memory().Len()).
		Bool("high", result.NewHighScore).
		Msgf("Game %d Score %d Record %d", games, result.Score, s.record)

	s.trackers.Track(result.Score, result.Mean)

	for _, c := range s.checkpointers {
		if err := c.Checkpoint(games); err != nil {
			return result, fmt.Errorf("step: could not checkpoint: %v", err)
		}
	}
	return result, nil
}

// RunEpisode steps the session until a game ends, returning the result
// of the final step
func (s *Session) RunEpisode(ctx context.Context) (StepResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return StepResult{}, err
		}

		result, err := s.Step()
		if err != nil || result.Done {
			return result, err
		}
	}
}

// Run runs episodes until ctx is done or the maximum number of
// episodes has been played. The context error is returned if ctx ends
// the session.
func (s *Session) Run(ctx context.Context) error {
	for episode := 0; s.config.MaxEpisodes <= 0 ||
		episode < s.config.MaxEpisodes; episode++ {
		if _, err := s.RunEpisode(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Save saves all the data tracked by the Trackers
func (s *Session) Save() error {
	if err := s.trackers.Save(); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}
