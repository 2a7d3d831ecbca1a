package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из строки конфигурации
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("неизвестный уровень логирования: %q", s)
	}
}

// Options настройки логгера
type Options struct {
	ConsoleLevel LogLevel
	FileLevel    LogLevel
	Dir          string // Пустая строка - без файла
}

// DefaultOptions: INFO в консоль, файл отключен
func DefaultOptions() Options {
	return Options{ConsoleLevel: INFO, FileLevel: DEBUG}
}

// Logger представляет логгер одного компонента
type Logger struct {
	component       string
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
	mu              sync.Mutex
}

var (
	defaultOptions = DefaultOptions()
	defaultLogger  = newConsoleLogger("", os.Stdout, INFO)
	defaultMu      sync.RWMutex
)

func newConsoleLogger(component string, w io.Writer, level LogLevel) *Logger {
	return &Logger{
		component:       component,
		consoleLogger:   log.New(w, "", log.LstdFlags),
		minConsoleLevel: level,
		minFileLevel:    ERROR + 1,
	}
}

// NewLogger создаёт логгер компонента с текущими настройками по умолчанию
func NewLogger(component string) (*Logger, error) {
	defaultMu.RLock()
	opts := defaultOptions
	defaultMu.RUnlock()

	return NewLoggerWithOptions(component, opts)
}

// NewLoggerWithOptions создаёт логгер компонента: консоль + файл logs/<component>_<время>.log
func NewLoggerWithOptions(component string, opts Options) (*Logger, error) {
	l := newConsoleLogger(component, os.Stdout, opts.ConsoleLevel)
	if opts.Dir == "" {
		return l, nil
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", opts.Dir, err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	name := component
	if name == "" {
		name = "voxeld"
	}
	filename := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", name, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	l.file = file
	l.fileLogger = log.New(file, "", log.LstdFlags)
	l.minFileLevel = opts.FileLevel
	return l, nil
}

// SetOutput перенаправляет консольный вывод (для тестов)
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consoleLogger.SetOutput(w)
}

// SetLevels меняет минимальные уровни
func (l *Logger) SetLevels(consoleLevel, fileLevel LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minConsoleLevel = consoleLevel
	l.minFileLevel = fileLevel
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

func (l *Logger) logMessage(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.minConsoleLevel && (l.fileLogger == nil || level < l.minFileLevel) {
		return
	}

	message := fmt.Sprintf(format, args...)
	if l.component != "" {
		message = fmt.Sprintf("[%s] [%s] %s", level.String(), l.component, message)
	} else {
		message = fmt.Sprintf("[%s] %s", level.String(), message)
	}

	if l.fileLogger != nil && level >= l.minFileLevel {
		l.fileLogger.Println(message)
	}
	if level >= l.minConsoleLevel {
		l.consoleLogger.Println(message)
	}
}

// Trace логирует сообщение уровня TRACE
func (l *Logger) Trace(format string, args ...interface{}) { l.logMessage(TRACE, format, args...) }

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) { l.logMessage(DEBUG, format, args...) }

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) { l.logMessage(INFO, format, args...) }

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) { l.logMessage(WARN, format, args...) }

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) { l.logMessage(ERROR, format, args...) }

// InitDefaultLogger настраивает логгер по умолчанию и параметры для новых логгеров компонентов
func InitDefaultLogger(component string, opts Options) error {
	l, err := NewLoggerWithOptions(component, opts)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = l
	defaultOptions = opts
	defaultMu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

// CloseDefaultLogger закрывает логгер по умолчанию и все логгеры компонентов
func CloseDefaultLogger() {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()

	if l != nil {
		_ = l.Close()
	}
	_ = GetLoggerManager().CloseAll()
}

// Default возвращает логгер по умолчанию
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Trace логирует сообщение уровня TRACE в логгер по умолчанию
func Trace(format string, args ...interface{}) { Default().Trace(format, args...) }

// Debug логирует сообщение уровня DEBUG в логгер по умолчанию
func Debug(format string, args ...interface{}) { Default().Debug(format, args...) }

// Info логирует сообщение уровня INFO в логгер по умолчанию
func Info(format string, args ...interface{}) { Default().Info(format, args...) }

// Warn логирует сообщение уровня WARN в логгер по умолчанию
func Warn(format string, args ...interface{}) { Default().Warn(format, args...) }

// Error логирует сообщение уровня ERROR в логгер по умолчанию
func Error(format string, args ...interface{}) { Default().Error(format, args...) }

// LogChunkRebuild логирует перестройку меша чанка
func LogChunkRebuild(l *Logger, chunk fmt.Stringer, faces, triangles int) {
	l.Trace("🧱 Чанк %s перестроен: граней %d, треугольников %d", chunk, faces, triangles)
}

// LogBlockRemoved логирует удаление блока
func LogBlockRemoved(l *Logger, chunk, local fmt.Stringer, kind fmt.Stringer) {
	l.Debug("⛏️ Блок %s удалён: чанк %s, позиция %s", kind, chunk, local)
}
