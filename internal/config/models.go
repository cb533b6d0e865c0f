package config

// Classifier roster names, matching the classifier type names
const (
	ModelLogisticRegression = "LogisticRegression"
	ModelMultinomialNB      = "MultinomialNB"
	ModelRandomForest       = "RandomForestClassifier"
	ModelGradientBoosting   = "GradientBoostingClassifier"
	ModelLinearSVC          = "LinearSVC"
	ModelSGD                = "SGDClassifier"
)

// DefaultModels is the full roster in evaluation order
var DefaultModels = []string{
	ModelLogisticRegression,
	ModelMultinomialNB,
	ModelRandomForest,
	ModelGradientBoosting,
	ModelLinearSVC,
	ModelSGD,
}

// DataConfig represents the input corpus configuration
type DataConfig struct {
	Path          string
	Delimiter     rune
	Encoding      string
	IndexColumn   string
	LabelColumn   string
	TextColumn    string
	DropColumns   []string
	HamLabel      string
	SpamLabel     string
	MaxTextLength int
}

// TextConfig represents the text normalization configuration
type TextConfig struct {
	Language       string
	Stemmer        string
	Lemmatize      bool
	StopwordsFile  string
	ExtraStopwords []string
}

// SplitConfig represents the train/test split configuration
type SplitConfig struct {
	TestSize float64
	Seed     int64
	Stratify bool
}

// VectorizerConfig represents the n-gram count vectorizer configuration
type VectorizerConfig struct {
	MinDF    int
	NGramMin int
	NGramMax int
}

// SMOTEConfig represents the minority oversampling configuration
type SMOTEConfig struct {
	Enabled    bool
	KNeighbors int
	Seed       int64
}

// LogisticRegressionConfig holds LogisticRegression hyper-parameters
type LogisticRegressionConfig struct {
	C            float64
	MaxIter      int
	LearningRate float64
	Tol          float64
}

// MultinomialNBConfig holds MultinomialNB hyper-parameters
type MultinomialNBConfig struct {
	Alpha float64
}

// RandomForestConfig holds RandomForestClassifier hyper-parameters
type RandomForestConfig struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
}

// GradientBoostingConfig holds GradientBoostingClassifier hyper-parameters
type GradientBoostingConfig struct {
	NEstimators     int
	LearningRate    float64
	MaxDepth        int
	MinSamplesSplit int
	RandomState     int64
}

// LinearSVCConfig holds LinearSVC hyper-parameters
type LinearSVCConfig struct {
	C       float64
	MaxIter int
	Tol     float64
}

// SGDConfig holds SGDClassifier hyper-parameters
type SGDConfig struct {
	Alpha   float64
	MaxIter int
	Tol     float64
}

// ModelsConfig represents the classifier roster configuration
type ModelsConfig struct {
	Enabled            []string
	Seed               int64
	LogisticRegression LogisticRegressionConfig
	MultinomialNB      MultinomialNBConfig
	RandomForest       RandomForestConfig
	GradientBoosting   GradientBoostingConfig
	LinearSVC          LinearSVCConfig
	SGD                SGDConfig
}

// ReportConfig represents the results output configuration
type ReportConfig struct {
	Format   string
	Detailed bool
}

// StoreConfig represents the run history store configuration
type StoreConfig struct {
	Type        string
	SQLitePath  string
	MySQLDSN    string
	PostgresDSN string
}

// GetData returns the input corpus configuration
func (c *Config) GetData() DataConfig {
	delim := ','
	if d := []rune(c.GetString("data.delimiter")); len(d) > 0 {
		delim = d[0]
	}
	return DataConfig{
		Path:          c.GetString("data.path"),
		Delimiter:     delim,
		Encoding:      c.GetString("data.encoding"),
		IndexColumn:   c.GetString("data.index_column"),
		LabelColumn:   c.GetString("data.label_column"),
		TextColumn:    c.GetString("data.text_column"),
		DropColumns:   c.GetStringSlice("data.drop_columns"),
		HamLabel:      c.GetString("data.ham_label"),
		SpamLabel:     c.GetString("data.spam_label"),
		MaxTextLength: c.GetInt("data.max_text_length"),
	}
}

// GetText returns the text normalization configuration
func (c *Config) GetText() TextConfig {
	return TextConfig{
		Language:       c.GetString("text.language"),
		Stemmer:        c.GetString("text.stemmer"),
		Lemmatize:      c.GetBool("text.lemmatize"),
		StopwordsFile:  c.GetString("text.stopwords_file"),
		ExtraStopwords: c.GetStringSlice("text.extra_stopwords"),
	}
}

// GetSplit returns the train/test split configuration
func (c *Config) GetSplit() SplitConfig {
	return SplitConfig{
		TestSize: c.GetFloat64("split.test_size"),
		Seed:     c.GetInt64("split.seed"),
		Stratify: c.GetBool("split.stratify"),
	}
}

// GetVectorizer returns the vectorizer configuration
func (c *Config) GetVectorizer() VectorizerConfig {
	return VectorizerConfig{
		MinDF:    c.GetInt("vectorizer.min_df"),
		NGramMin: c.GetInt("vectorizer.ngram_min"),
		NGramMax: c.GetInt("vectorizer.ngram_max"),
	}
}

// GetSMOTE returns the oversampling configuration
func (c *Config) GetSMOTE() SMOTEConfig {
	return SMOTEConfig{
		Enabled:    c.GetBool("smote.enabled"),
		KNeighbors: c.GetInt("smote.k_neighbors"),
		Seed:       c.GetInt64("smote.seed"),
	}
}

// GetModels returns the classifier roster configuration
func (c *Config) GetModels() ModelsConfig {
	return ModelsConfig{
		Enabled: c.GetStringSlice("models.enabled"),
		Seed:    c.GetInt64("models.seed"),
		LogisticRegression: LogisticRegressionConfig{
			C:            c.GetFloat64("models.logistic_regression.c"),
			MaxIter:      c.GetInt("models.logistic_regression.max_iter"),
			LearningRate: c.GetFloat64("models.logistic_regression.learning_rate"),
			Tol:          c.GetFloat64("models.logistic_regression.tol"),
		},
		MultinomialNB: MultinomialNBConfig{
			Alpha: c.GetFloat64("models.multinomial_nb.alpha"),
		},
		RandomForest: RandomForestConfig{
			NEstimators:     c.GetInt("models.random_forest.n_estimators"),
			MaxDepth:        c.GetInt("models.random_forest.max_depth"),
			MinSamplesSplit: c.GetInt("models.random_forest.min_samples_split"),
		},
		GradientBoosting: GradientBoostingConfig{
			NEstimators:     c.GetInt("models.gradient_boosting.n_estimators"),
			LearningRate:    c.GetFloat64("models.gradient_boosting.learning_rate"),
			MaxDepth:        c.GetInt("models.gradient_boosting.max_depth"),
			MinSamplesSplit: c.GetInt("models.gradient_boosting.min_samples_split"),
			RandomState:     c.GetInt64("models.gradient_boosting.random_state"),
		},
		LinearSVC: LinearSVCConfig{
			C:       c.GetFloat64("models.linear_svc.c"),
			MaxIter: c.GetInt("models.linear_svc.max_iter"),
			Tol:     c.GetFloat64("models.linear_svc.tol"),
		},
		SGD: SGDConfig{
			Alpha:   c.GetFloat64("models.sgd.alpha"),
			MaxIter: c.GetInt("models.sgd.max_iter"),
			Tol:     c.GetFloat64("models.sgd.tol"),
		},
	}
}

// GetReport returns the output configuration
func (c *Config) GetReport() ReportConfig {
	return ReportConfig{
		Format:   c.GetString("report.format"),
		Detailed: c.GetBool("report.detailed"),
	}
}

// GetStore returns the run history store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:        c.GetString("store.type"),
		SQLitePath:  c.GetString("store.sqlite_path"),
		MySQLDSN:    c.GetString("store.mysql_dsn"),
		PostgresDSN: c.GetString("store.postgres_dsn"),
	}
}
