//go:build darwin

// Package native provides the OS accessibility, prompt and keystroke
// facilities for the input-synthesis gate.
package native

// #cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
// #include <ApplicationServices/ApplicationServices.h>
// #include <CoreFoundation/CoreFoundation.h>
//
// static int clipkeep_ax_trusted(void) {
//     return AXIsProcessTrusted() ? 1 : 0;
// }
//
// // Returns 1 when the user picked "Open System Settings".
// static int clipkeep_prompt(void) {
//     CFOptionFlags response = 0;
//     CFUserNotificationDisplayAlert(0, kCFUserNotificationCautionAlertLevel,
//         NULL, NULL, NULL,
//         CFSTR("Accessibility permission required"),
//         CFSTR("clipkeep pastes the selected item by sending Command-V to the "
//               "active application. Grant access in System Settings > "
//               "Privacy & Security > Accessibility."),
//         CFSTR("Open System Settings"),
//         CFSTR("Deny"),
//         NULL,
//         &response);
//     return (response & 0x3) == kCFUserNotificationDefaultResponse ? 1 : 0;
// }
//
// static void clipkeep_paste(void) {
//     const CGKeyCode keyV = 9;
//     const CGEventFlags cmd = kCGEventFlagMaskCommand | 0x000008;
//     CGEventSourceRef src = CGEventSourceCreate(kCGEventSourceStateCombinedSessionState);
//     if (src == NULL) return;
//
//     // Hold back the user's own keyboard and mouse while the chord is posted.
//     CGEventSourceSetLocalEventsFilterDuringSuppressionState(src,
//         kCGEventFilterMaskPermitSystemDefinedEvents,
//         kCGEventSuppressionStateSuppressionInterval);
//
//     CGEventRef down = CGEventCreateKeyboardEvent(src, keyV, true);
//     CGEventRef up = CGEventCreateKeyboardEvent(src, keyV, false);
//     CGEventSetFlags(down, cmd);
//     CGEventSetFlags(up, cmd);
//     CGEventPost(kCGAnnotatedSessionEventTap, down);
//     CGEventPost(kCGAnnotatedSessionEventTap, up);
//
//     CGEventSourceSetLocalEventsFilterDuringSuppressionState(src,
//         kCGEventFilterMaskPermitAllEvents,
//         kCGEventSuppressionStateSuppressionInterval);
//
//     CFRelease(down);
//     CFRelease(up);
//     CFRelease(src);
// }
import "C"

import "go.klb.dev/clipkeep/internal/gate"

// Platform returns the macOS accessibility, alert and CGEvent facilities.
func Platform() gate.Platform {
	return gate.Platform{
		Permission:  axPermission{},
		Prompter:    alertPrompter{},
		Synthesizer: cgSynthesizer{},
	}
}

type axPermission struct{}

func (axPermission) Trusted() bool { return C.clipkeep_ax_trusted() == 1 }

// alertPrompter uses CFUserNotificationDisplayAlert, which is safe to call
// off the main thread and blocks until answered.
type alertPrompter struct{}

func (alertPrompter) Prompt() bool { return C.clipkeep_prompt() == 1 }

type cgSynthesizer struct{}

func (cgSynthesizer) PasteKeystroke() { C.clipkeep_paste() }
