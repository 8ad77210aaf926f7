package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS     = ""             // e.g. "absen.example.com,api.example.com"
	BIND_ADDRESS    = "0.0.0.0:8080" // ignored when TLS_DOMAINS is set
	DEBUG_MODE      = true
	CORS_ORIGINS    = "http://localhost:5173" // comma separated, "*" allows everything
	MYSQL_DSN       = ""                      // MySQL will be used if this is set
	POSTGRES_DSN    = ""                      // PostgreSQL will be used if MYSQL_DSN is not set and this is
	SQLITE_FILE     = "attendance.db"         // SQLite fallback
	JWT_SECRET      = "change-me"
	JWT_TTL         = 8 * time.Hour
	SESSION_KEY     = "change-me-too" // cookie store key for browser logins
	SESSION_MAX_AGE = 8 * 3600        // seconds

	// Face recognition. Both artifacts are loaded once at startup.
	FACE_DETECTOR             = "pigo" // pigo or dlib (needs -tags dlib)
	FACE_DETECTOR_MODEL       = "models/facefinder"
	FACE_DLIB_MODELS_DIR      = "models/dlib"
	FACE_DLIB_CNN             = false
	FACE_CLASSIFIER_MODEL     = "models/svm_face_recognition.json"
	FACE_CROP_MODE            = "full" // full or upper (top 60% of the box), must match the classifier training
	FACE_MIN_SIZE             = 20
	FACE_MAX_SIZE             = 1000
	FACE_MIN_QUALITY          = 5.0 // pigo detection score floor
	RECOGNITION_WORKERS       = 2
	RECOGNITION_TIMEOUT       = 20 * time.Second
	ATTENDANCE_MIN_CONFIDENCE = 0.0 // 0 accepts every match
	MAX_UPLOAD_MB             = 10

	// Attendance snapshots (the uploaded frames)
	SNAPSHOT_STORAGE = "none" // none, disk, s3 or minio
	SNAPSHOT_DIR     = "snapshots"
	S3_BUCKET        = ""
	S3_REGION        = "us-east-1"
	S3_ENDPOINT      = ""
	S3_PREFIX        = "snapshots"
	S3_ACCESS_KEY    = ""
	S3_SECRET_KEY    = ""
	MINIO_ENDPOINT   = "localhost:9000"
	MINIO_ACCESS_KEY = ""
	MINIO_SECRET_KEY = ""
	MINIO_BUCKET     = "attendance-snapshots"
	MINIO_USE_SSL    = false

	// MQTT attendance events, disabled when MQTT_HOST is empty
	MQTT_HOST         = ""
	MQTT_PORT         = 1883
	MQTT_USERNAME     = ""
	MQTT_PASSWORD     = ""
	MQTT_CLIENT_ID    = "attendance-server"
	MQTT_TOPIC_PREFIX = "attendance"
)

func init() {
	// .env is optional
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("POSTGRES_DSN", &POSTGRES_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("JWT_SECRET", &JWT_SECRET)
	readEnvDuration("JWT_TTL", &JWT_TTL)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("FACE_DETECTOR", &FACE_DETECTOR)
	readEnvString("FACE_DETECTOR_MODEL", &FACE_DETECTOR_MODEL)
	readEnvString("FACE_DLIB_MODELS_DIR", &FACE_DLIB_MODELS_DIR)
	readEnvBool("FACE_DLIB_CNN", &FACE_DLIB_CNN)
	readEnvString("FACE_CLASSIFIER_MODEL", &FACE_CLASSIFIER_MODEL)
	readEnvString("FACE_CROP_MODE", &FACE_CROP_MODE)
	readEnvInt("FACE_MIN_SIZE", &FACE_MIN_SIZE)
	readEnvInt("FACE_MAX_SIZE", &FACE_MAX_SIZE)
	readEnvFloat("FACE_MIN_QUALITY", &FACE_MIN_QUALITY)
	readEnvInt("RECOGNITION_WORKERS", &RECOGNITION_WORKERS)
	readEnvDuration("RECOGNITION_TIMEOUT", &RECOGNITION_TIMEOUT)
	readEnvFloat("ATTENDANCE_MIN_CONFIDENCE", &ATTENDANCE_MIN_CONFIDENCE)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvString("SNAPSHOT_STORAGE", &SNAPSHOT_STORAGE)
	readEnvString("SNAPSHOT_DIR", &SNAPSHOT_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_ACCESS_KEY", &S3_ACCESS_KEY)
	readEnvString("S3_SECRET_KEY", &S3_SECRET_KEY)
	readEnvString("MINIO_ENDPOINT", &MINIO_ENDPOINT)
	readEnvString("MINIO_ACCESS_KEY", &MINIO_ACCESS_KEY)
	readEnvString("MINIO_SECRET_KEY", &MINIO_SECRET_KEY)
	readEnvString("MINIO_BUCKET", &MINIO_BUCKET)
	readEnvBool("MINIO_USE_SSL", &MINIO_USE_SSL)
	readEnvString("MQTT_HOST", &MQTT_HOST)
	readEnvInt("MQTT_PORT", &MQTT_PORT)
	readEnvString("MQTT_USERNAME", &MQTT_USERNAME)
	readEnvString("MQTT_PASSWORD", &MQTT_PASSWORD)
	readEnvString("MQTT_CLIENT_ID", &MQTT_CLIENT_ID)
	readEnvString("MQTT_TOPIC_PREFIX", &MQTT_TOPIC_PREFIX)
}

// CorsOrigins splits CORS_ORIGINS into a list
func CorsOrigins() []string {
	result := []string{}
	for _, o := range strings.Split(CORS_ORIGINS, ",") {
		if o = strings.TrimSpace(o); o != "" {
			result = append(result, o)
		}
	}
	return result
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvFloat(name string, value *float64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}

// readEnvDuration accepts Go durations ("90s") or plain seconds
func readEnvDuration(name string, value *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*value = d
		return
	}
	if s, err := strconv.Atoi(v); err == nil {
		*value = time.Duration(s) * time.Second
	}
}
