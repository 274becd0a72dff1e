package harvester

const ENV_DATABASE_URL = "DATABASE_URL"
const ENV_AI_MODEL = "AI_MODEL"
const ENV_GITEE_AI_API_KEY = "GITEE_AI_API_KEY"
const ENV_NVIDIA_API_KEY = "NVIDIA_API_KEY"
const ENV_X_COOKIE = "X_COOKIE"
const ENV_X_PROXY = "X_PROXY"
const ENV_TELEGRAM_API_KEY = "TELEGRAM_API_KEY"
const ENV_TELEGRAM_ADMIN_CHAT_ID = "TG_ADMIN_CHAT_ID"
const ENV_GMAIL_EMAIL = "GMAIL_EMAIL"
const ENV_GMAIL_PASSWORD = "GMAIL_PASSWORD"
const ENV_GMAIL_SENDER_FILTER = "GMAIL_SENDER_FILTER"
const ENV_GMAIL_MAILBOX = "GMAIL_MAILBOX"
const ENV_X_ACCOUNTS = "X_ACCOUNTS"

// Import source tags, one per driver.
const IMPORT_SOURCE_X_MONITOR = "x-monitor"
const IMPORT_SOURCE_X_SEARCH = "x-search-viral"
const IMPORT_SOURCE_GMAIL = "gmail-grok"
const IMPORT_SOURCE_OPENNANA = "opennana"
const IMPORT_SOURCE_YOUMIND = "youmind"
const IMPORT_SOURCE_X_URLS = "aiart-x-urls"

// A prompt shorter than this after trimming is treated as a title, not a prompt.
const MIN_PROMPT_LENGTH = 20

// Caps applied before insert.
const MAX_TAGS = 5
const MAX_IMAGES = 5

const COOKIES_FILE = "x_cookies.json"
const FAILED_IMPORTS_DIR = "failed_imports"
