package logger

import "github.com/ThreeDotsLabs/watermill"

// WatermillAdapter routes watermill's internal logs through ILogger under
// the "watermill" module.
type WatermillAdapter struct {
	log    ILogger
	fields watermill.LogFields
	debug  bool
}

func NewWatermillAdapter(log ILogger, debug bool) watermill.LoggerAdapter {
	return &WatermillAdapter{log: log, debug: debug}
}

func (a *WatermillAdapter) details(fields watermill.LogFields) map[string]interface{} {
	d := make(map[string]interface{}, len(a.fields)+len(fields))
	for k, v := range a.fields {
		d[k] = v
	}
	for k, v := range fields {
		d[k] = v
	}
	return d
}

func (a *WatermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	d := a.details(fields)
	d["error"] = err.Error()
	a.log.Error("watermill", msg, d)
}

func (a *WatermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info("watermill", msg, a.details(fields))
}

func (a *WatermillAdapter) Debug(msg string, fields watermill.LogFields) {
	if a.debug {
		a.log.Debug("watermill", msg, a.details(fields))
	}
}

func (a *WatermillAdapter) Trace(msg string, fields watermill.LogFields) {
	if a.debug {
		a.log.Debug("watermill", msg, a.details(fields))
	}
}

func (a *WatermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &WatermillAdapter{log: a.log, fields: a.fields.Add(fields), debug: a.debug}
}
