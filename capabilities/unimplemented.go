package capabilities

import "github.com/example/flowgrid/core"

// Unimplemented is an IO base whose every primitive reports
// IoOperationNotImplemented. Target implementations embed it and override
// the primitives they actually support.
type Unimplemented struct {
	debug core.DebugHandler
}

// SetDebugHandler wires the debug sink.
func (u *Unimplemented) SetDebugHandler(h core.DebugHandler) {
	if u == nil {
		return
	}
	u.debug = h
}

// Debug returns the wired debug handler, or nil.
func (u *Unimplemented) Debug() core.DebugHandler {
	if u == nil {
		return nil
	}
	return u.debug
}

// ReportUnimplemented emits the not-implemented debug event.
func (u *Unimplemented) ReportUnimplemented() {
	if u == nil || u.debug == nil {
		return
	}
	u.debug.EmitDebug(core.DebugLevelError, core.DebugIoOperationNotImplemented)
}

// SerialBegin reports not implemented.
func (u *Unimplemented) SerialBegin(device, baudrate int) { u.ReportUnimplemented() }

// SerialDataAvailable reports not implemented.
func (u *Unimplemented) SerialDataAvailable(device int) int { u.ReportUnimplemented(); return 0 }

// SerialRead reports not implemented.
func (u *Unimplemented) SerialRead(device int) byte { u.ReportUnimplemented(); return 0 }

// SerialWrite reports not implemented.
func (u *Unimplemented) SerialWrite(device int, b byte) { u.ReportUnimplemented() }

// PinSetMode reports not implemented.
func (u *Unimplemented) PinSetMode(pin core.PinID, mode PinMode) { u.ReportUnimplemented() }

// PinSetPullup reports not implemented.
func (u *Unimplemented) PinSetPullup(pin core.PinID, mode PullupMode) { u.ReportUnimplemented() }

// DigitalWrite reports not implemented.
func (u *Unimplemented) DigitalWrite(pin core.PinID, val bool) { u.ReportUnimplemented() }

// DigitalRead reports not implemented.
func (u *Unimplemented) DigitalRead(pin core.PinID) bool { u.ReportUnimplemented(); return false }

// AnalogRead reports not implemented.
func (u *Unimplemented) AnalogRead(pin core.PinID) int { u.ReportUnimplemented(); return 0 }

// PwmWrite reports not implemented.
func (u *Unimplemented) PwmWrite(pin core.PinID, dutyPercent int) { u.ReportUnimplemented() }

// TimerCurrentMs reports not implemented.
func (u *Unimplemented) TimerCurrentMs() int64 { u.ReportUnimplemented(); return 0 }

// TimerCurrentMicros reports not implemented.
func (u *Unimplemented) TimerCurrentMicros() int64 { u.ReportUnimplemented(); return 0 }

// AttachExternalInterrupt reports not implemented.
func (u *Unimplemented) AttachExternalInterrupt(interrupt int, mode InterruptMode, fn InterruptFunc, user any) {
	u.ReportUnimplemented()
}

// SPISetMode reports not implemented.
func (u *Unimplemented) SPISetMode() { u.ReportUnimplemented() }
