package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	DatabaseSchema  string `envconfig:"DATABASE_SCHEMA" default:"serviceplan"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	// Scheduling
	TimeZone    string `envconfig:"TIME_ZONE" default:"Europe/Berlin"`
	ServiceHour int    `envconfig:"SERVICE_HOUR" default:"10"`

	// Presentation
	Language           string   `envconfig:"DEFAULT_LANGUAGE" default:"de"`
	LanguageSwitchable bool     `envconfig:"LANGUAGE_SWITCHABLE" default:"false"`
	UploadsInTab       bool     `envconfig:"UPLOADS_IN_TAB" default:"true"`
	ListColumns        []string `envconfig:"LIST_COLUMNS"`
	LinkListRows       bool     `envconfig:"LINK_LIST_ROWS" default:"true"`

	// S3 media storage
	S3BucketName   string `envconfig:"S3_BUCKET_NAME"`
	S3BaseEndpoint string `envconfig:"S3_BASE_ENDPOINT"`
	S3KeyPrefix    string `envconfig:"S3_KEY_PREFIX" default:"service-uploads"`
	PresignTTLMin  uint   `envconfig:"PRESIGN_TTL_MIN" default:"15"`
	MaxUploadMB    int64  `envconfig:"MAX_UPLOAD_MB" default:"32"`

	// Capabilities of anonymous visitors and of signed in editors
	PublicCanCreate bool `envconfig:"PUBLIC_CAN_CREATE" default:"false"`
	PublicCanEdit   bool `envconfig:"PUBLIC_CAN_EDIT" default:"false"`
	PublicCanUpload bool `envconfig:"PUBLIC_CAN_UPLOAD" default:"false"`
	EditorCanCreate bool `envconfig:"EDITOR_CAN_CREATE" default:"true"`
	EditorCanEdit   bool `envconfig:"EDITOR_CAN_EDIT" default:"true"`
	EditorCanUpload bool `envconfig:"EDITOR_CAN_UPLOAD" default:"true"`

	// bcrypt hashes of the shared editor and admin passphrases
	EditorPasswordHash string `envconfig:"EDITOR_PASSWORD_HASH"`
	AdminPasswordHash  string `envconfig:"ADMIN_PASSWORD_HASH"`

	// Auth Configuration
	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"serviceplan_session"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"604800"` // 7 days
	SecureCookies    bool   `envconfig:"SECURE_COOKIES" default:"true"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
	CSRFKey        string `envconfig:"CSRF_KEY"`         // 32 bytes

	CSRFTrustedOrigins []string `envconfig:"CSRF_TRUSTED_ORIGINS"`
}
