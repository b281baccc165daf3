package exheader

import (
	"math"

	"github.com/mseedgo/miniseed/errs"
)

// EventDetection is a triggered event-detection sub-object (e.g. an
// STA/LTA or threshold pick). Fields left at their sentinel value
// (zero or NaN for floats, "" for strings) are omitted from the serialized
// object.
type EventDetection struct {
	Type           string
	SignalAmplitude float64
	SignalPeriod    float64
	BackgroundEstimate float64
	Wave            string
	OnsetTime       string
}

// Calibration describes a calibration activity window.
type Calibration struct {
	Type           string
	BeginTime      string
	EndTime        string
	Amplitude      float64
	InputUnits     string
	AmplitudeRange string
}

// TimingException describes a clock anomaly.
type TimingException struct {
	VCOCorrection float64
	Time          string
	Exception     string
	Count         int64
	Type          string
	ClockStatus   string
}

// Recenter describes a mass-recentering event on a sensor.
type Recenter struct {
	Type      string
	BeginTime string
	EndTime   string
}

func putIfString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putIfFloat(m map[string]any, key string, v float64) {
	if v != 0 && !math.IsNaN(v) {
		m[key] = v
	}
}

func putIfInt(m map[string]any, key string, v int64) {
	if v != 0 {
		m[key] = v
	}
}

// AddEventDetection appends ev as a non-sentinel-fields-only object to the
// array at path, creating the array if it does not yet exist.
func (d *Doc) AddEventDetection(path string, ev EventDetection) error {
	obj := map[string]any{}
	putIfString(obj, "Type", ev.Type)
	putIfFloat(obj, "SignalAmplitude", ev.SignalAmplitude)
	putIfFloat(obj, "SignalPeriod", ev.SignalPeriod)
	putIfFloat(obj, "BackgroundEstimate", ev.BackgroundEstimate)
	putIfString(obj, "Wave", ev.Wave)
	putIfString(obj, "OnsetTime", ev.OnsetTime)

	return d.appendToArray(path, obj)
}

// AddCalibration appends cal as a non-sentinel-fields-only object to the
// array at path.
func (d *Doc) AddCalibration(path string, cal Calibration) error {
	obj := map[string]any{}
	putIfString(obj, "Type", cal.Type)
	putIfString(obj, "BeginTime", cal.BeginTime)
	putIfString(obj, "EndTime", cal.EndTime)
	putIfFloat(obj, "Amplitude", cal.Amplitude)
	putIfString(obj, "InputUnits", cal.InputUnits)
	putIfString(obj, "AmplitudeRange", cal.AmplitudeRange)

	return d.appendToArray(path, obj)
}

// AddTimingException appends te as a non-sentinel-fields-only object to the
// array at path.
func (d *Doc) AddTimingException(path string, te TimingException) error {
	obj := map[string]any{}
	putIfFloat(obj, "VCOCorrection", te.VCOCorrection)
	putIfString(obj, "Time", te.Time)
	putIfString(obj, "Exception", te.Exception)
	putIfInt(obj, "Count", te.Count)
	putIfString(obj, "Type", te.Type)
	putIfString(obj, "ClockStatus", te.ClockStatus)

	return d.appendToArray(path, obj)
}

// AddRecenter appends rc as a non-sentinel-fields-only object to the array
// at path.
func (d *Doc) AddRecenter(path string, rc Recenter) error {
	obj := map[string]any{}
	putIfString(obj, "Type", rc.Type)
	putIfString(obj, "BeginTime", rc.BeginTime)
	putIfString(obj, "EndTime", rc.EndTime)

	return d.appendToArray(path, obj)
}

func (d *Doc) appendToArray(path string, obj map[string]any) error {
	tokens := splitPointer(path)
	if len(tokens) == 0 {
		return errs.ErrInvalidPointer
	}
	if d.root == nil {
		d.root = map[string]any{}
	}

	cur := d.root
	for _, tok := range tokens[:len(tokens)-1] {
		next, ok := cur[tok]
		if !ok {
			m := map[string]any{}
			cur[tok] = m
			cur = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			m = map[string]any{}
			cur[tok] = m
		}
		cur = m
	}

	leaf := tokens[len(tokens)-1]
	existing, _ := cur[leaf].([]any)
	cur[leaf] = append(existing, obj)

	return nil
}
