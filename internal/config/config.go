package config

import (
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/jaminalder/tictactoe-ai/internal/engine"
    "github.com/joho/godotenv"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
)

// Presentation modes.
const (
    ModeWeb      = "web"
    ModeTerminal = "terminal"
)

type Config struct {
    Addr        string
    Mode        string
    Difficulty  engine.Difficulty
    Seed        uint64
    SearchDepth int
    LogLevel    zerolog.Level
    LogPretty   bool
    Heartbeat   time.Duration
}

// Load reads an optional .env file, then the environment.
func Load(files ...string) *Config {
    if err := godotenv.Load(files...); err != nil {
        log.Debug().Err(err).Msg("no .env file loaded")
    }
    return FromEnv()
}

// FromEnv builds a Config from TTT_* variables, falling back to defaults.
func FromEnv() *Config {
    mode := strings.ToLower(GetEnv("TTT_MODE", ModeWeb))
    if mode != ModeWeb && mode != ModeTerminal {
        log.Warn().Str("mode", mode).Msg("unknown TTT_MODE, using web")
        mode = ModeWeb
    }

    difficulty, err := engine.ParseDifficulty(GetEnv("TTT_DIFFICULTY", "medium"))
    if err != nil {
        log.Warn().Err(err).Msg("using medium difficulty")
    }

    level, err := zerolog.ParseLevel(GetEnv("TTT_LOG_LEVEL", "info"))
    if err != nil || level == zerolog.NoLevel {
        level = zerolog.InfoLevel
    }

    seed := GetEnvAsInt("TTT_SEED", 0)
    if seed <= 0 {
        seed = int(time.Now().UnixNano() & 0x7fffffffffffffff)
    }

    return &Config{
        Addr:        GetEnv("TTT_ADDR", ":8080"),
        Mode:        mode,
        Difficulty:  difficulty,
        Seed:        uint64(seed),
        SearchDepth: GetEnvAsInt("TTT_SEARCH_DEPTH", engine.DefaultDepth),
        LogLevel:    level,
        LogPretty:   GetEnvAsBool("TTT_LOG_PRETTY", false),
        Heartbeat:   time.Duration(GetEnvAsInt("TTT_HEARTBEAT_SECONDS", 15)) * time.Second,
    }
}

func GetEnv(key, defaultValue string) string {
    value := os.Getenv(key)
    if value == "" {
        return defaultValue
    }
    return value
}

func GetEnvAsInt(key string, defaultValue int) int {
    valueStr := os.Getenv(key)
    if valueStr == "" {
        return defaultValue
    }
    value, err := strconv.Atoi(valueStr)
    if err != nil {
        log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer, using default")
        return defaultValue
    }
    return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
    valueStr := os.Getenv(key)
    if valueStr == "" {
        return defaultValue
    }
    value, err := strconv.ParseBool(valueStr)
    if err != nil {
        log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean, using default")
        return defaultValue
    }
    return value
}
