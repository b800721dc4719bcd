package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	JobName  string
	FilePath string

	FileDir        string
	FileSuccessDir string
	FileFailedDir  string
	LogsDir        string
	ExportDir      string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	Worker             int
	BufferSize         int
	TimeoutSeconds     int
	IdleTimeoutSeconds int
	BatchSize          int

	// Pallet stock below this level is flagged in the summary.
	PalletSafetyThreshold int

	FTP  FTPConfig
	Mail MailConfig
}

type FTPConfig struct {
	Host                string
	Port                int
	Username            string
	Password            string
	RemoteDir           string
	FilePattern         string
	ArchiveDir          string
	DeleteAfterDownload bool
	MoveAfterDownload   bool
}

type MailConfig struct {
	Server     string
	Port       int
	Username   string
	Password   string
	Recipients string // comma separated
}

func Load() *Config {
	_ = godotenv.Load()

	workerCount, _ := strconv.Atoi(os.Getenv("WORKER_COUNT"))
	bufferSize, _ := strconv.Atoi(os.Getenv("BUFFER_SIZE"))
	timeoutSeconds, _ := strconv.Atoi(os.Getenv("TIMEOUT_SECONDS"))
	idleTimeoutSeconds, _ := strconv.Atoi(os.Getenv("IDLE_TIMEOUT_SECONDS"))
	batch, _ := strconv.Atoi(os.Getenv("BATCH_SIZE"))
	safety, _ := strconv.Atoi(os.Getenv("PALLET_SAFETY_THRESHOLD"))
	ftpPort, _ := strconv.Atoi(os.Getenv("FTP_PORT"))
	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	deleteAfterDownload, _ := strconv.ParseBool(os.Getenv("FTP_DELETE"))
	moveAfterDownload, _ := strconv.ParseBool(os.Getenv("FTP_MOVE"))

	if workerCount <= 0 {
		workerCount = 4
	}
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	if safety <= 0 {
		safety = 50
	}
	if mailPort <= 0 {
		mailPort = 587
	}

	cfg := &Config{
		JobName:  os.Getenv("JOB_NAME"),
		FilePath: os.Getenv("FILE_PATH"),

		DBHost: os.Getenv("SQLSERVER_HOST"),
		DBPort: os.Getenv("SQLSERVER_PORT"),
		DBUser: os.Getenv("SQLSERVER_USER"),
		DBPass: os.Getenv("SQLSERVER_PASSWORD"),
		DBName: os.Getenv("SQLSERVER_DB"),

		FileDir:               os.Getenv("PROCESS_DIR"),
		FileSuccessDir:        os.Getenv("PROCESS_SUCCESS_DIR"),
		FileFailedDir:         os.Getenv("PROCESS_FAILED_DIR"),
		LogsDir:               os.Getenv("LOG_PATH"),
		ExportDir:             os.Getenv("EXPORT_DIR"),
		Worker:                workerCount,
		BufferSize:            bufferSize,
		TimeoutSeconds:        timeoutSeconds,
		IdleTimeoutSeconds:    idleTimeoutSeconds,
		BatchSize:             batch,
		PalletSafetyThreshold: safety,

		FTP: FTPConfig{
			Host:                os.Getenv("FTP_HOST"),
			Port:                ftpPort,
			Username:            os.Getenv("FTP_USERNAME"),
			Password:            os.Getenv("FTP_PASSWORD"),
			RemoteDir:           os.Getenv("FTP_REMOTE_DIR"),
			FilePattern:         os.Getenv("FTP_FILE_PATTERN"),
			ArchiveDir:          os.Getenv("FTP_ARCHIVE_DIR"),
			DeleteAfterDownload: deleteAfterDownload,
			MoveAfterDownload:   moveAfterDownload,
		},

		Mail: MailConfig{
			Server:     os.Getenv("MAIL_SERVER"),
			Port:       mailPort,
			Username:   os.Getenv("MAIL_USERNAME"),
			Password:   os.Getenv("MAIL_PASSWORD"),
			Recipients: os.Getenv("MAIL_RECIPIENTS"),
		},
	}

	if cfg.FilePath == "" {
		log.Fatal("FILE_PATH wajib diisi")
	}

	return cfg
}
