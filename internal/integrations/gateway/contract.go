package gateway

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer получает длительность и исход каждого вызова бэкенда
type Observer interface {
	ObserveGatewayCall(operation, outcome string, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveGatewayCall(string, string, time.Duration) {}
