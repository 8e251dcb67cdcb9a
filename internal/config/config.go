package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Cron   CronConfig   `mapstructure:"cron"`
	Auth   AuthConfig   `mapstructure:"auth"`

	Engine       EngineConfig       `mapstructure:"engine"`
	Reasoner     ReasonerConfig     `mapstructure:"reasoner"`
	Intelligence IntelligenceConfig `mapstructure:"intelligence"`
	Validator    ValidatorConfig    `mapstructure:"validator"`
	History      HistoryConfig      `mapstructure:"history"`
	Feed         FeedConfig         `mapstructure:"feed"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	IntelReload  string `mapstructure:"intel_reload"`
	StatsRefresh string `mapstructure:"stats_refresh"`
	LogRetention string `mapstructure:"log_retention"`
}

type AuthConfig struct {
	// Token guards /api routes when set. Empty disables auth.
	Token string `mapstructure:"token"`
}

type EngineConfig struct {
	// DecideTimeout bounds one Decide call when the caller sets no deadline.
	DecideTimeout time.Duration `mapstructure:"decide_timeout"`
	// AuditWriteTimeout bounds the detached post-reply persistence.
	AuditWriteTimeout time.Duration `mapstructure:"audit_write_timeout"`
}

type ReasonerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
}

type IntelligenceConfig struct {
	Dir string `mapstructure:"dir"`

	// Cluster matching tolerances for the bidder fallback.
	ClusterAggressionTol float64 `mapstructure:"cluster_aggression_tol"`
	ClusterReactionTolS  float64 `mapstructure:"cluster_reaction_tol_s"`
	ClusterMinSamples    int     `mapstructure:"cluster_min_samples"`

	// Resource priority cutoffs.
	PriorityHighCutoff   float64 `mapstructure:"priority_high_cutoff"`
	PriorityMediumCutoff float64 `mapstructure:"priority_medium_cutoff"`

	// MergeOpponentProfiles folds recorded opponents into the bidder table on reload.
	MergeOpponentProfiles bool `mapstructure:"merge_opponent_profiles"`
}

type ValidatorConfig struct {
	MinReasoningLen  int      `mapstructure:"min_reasoning_len"`
	Keywords         []string `mapstructure:"keywords"`
	MinKeywordHits   int      `mapstructure:"min_keyword_hits"`
	LowRiskMinConf   float64  `mapstructure:"low_risk_min_confidence"`
	AggressiveMinUSD float64  `mapstructure:"aggressive_early_min_value"`
}

type HistoryConfig struct {
	MinSamples       int64         `mapstructure:"min_samples"`
	SimilarLimit     int           `mapstructure:"similar_limit"`
	SimilarWindowPct float64       `mapstructure:"similar_window_pct"`
	ThreadRoundLimit int           `mapstructure:"thread_round_limit"`
	LogRetention     time.Duration `mapstructure:"log_retention"`
}

type FeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Buffer  int  `mapstructure:"buffer"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.intel_reload", "@every 15m")
	v.SetDefault("cron.stats_refresh", "@every 5m")
	v.SetDefault("cron.log_retention", "0 0 3 * * *")
	v.SetDefault("auth.token", "")

	v.SetDefault("engine.decide_timeout", "25s")
	v.SetDefault("engine.audit_write_timeout", "5s")

	// Reasoner credentials come from BID_REASONER_API_KEY; a missing key means
	// rules-only mode, never a startup failure.
	v.SetDefault("reasoner.enabled", true)
	v.SetDefault("reasoner.api_key", "")
	v.SetDefault("reasoner.model", "gemini-3-flash-preview")
	v.SetDefault("reasoner.timeout", "20s")
	v.SetDefault("reasoner.temperature", 0.2)
	v.SetDefault("reasoner.max_output_tokens", 1024)

	v.SetDefault("intelligence.dir", "data/intelligence")
	v.SetDefault("intelligence.cluster_aggression_tol", 2.0)
	v.SetDefault("intelligence.cluster_reaction_tol_s", 60.0)
	v.SetDefault("intelligence.cluster_min_samples", 5)
	v.SetDefault("intelligence.priority_high_cutoff", 1.0)
	v.SetDefault("intelligence.priority_medium_cutoff", 0.5)
	v.SetDefault("intelligence.merge_opponent_profiles", true)

	v.SetDefault("validator.min_reasoning_len", 100)
	v.SetDefault("validator.keywords", []string{"profit", "risk", "competition", "strategy"})
	v.SetDefault("validator.min_keyword_hits", 2)
	v.SetDefault("validator.low_risk_min_confidence", 0.5)
	v.SetDefault("validator.aggressive_early_min_value", 500)

	v.SetDefault("history.min_samples", 5)
	v.SetDefault("history.similar_limit", 20)
	v.SetDefault("history.similar_window_pct", 0.30)
	v.SetDefault("history.thread_round_limit", 10)
	v.SetDefault("history.log_retention", "2160h")

	v.SetDefault("feed.enabled", true)
	v.SetDefault("feed.buffer", 64)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
