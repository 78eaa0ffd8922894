// Package static supplies documents that are synthesized locally rather
// than fetched: the always-available hospital/emergency entries and the
// hand-authored baseline catalog the refresh pass augments.
package static

import (
	"context"
	"fmt"

	"github.com/localready/readykit"
)

// Source identifies locally synthesized documents in metadata.
const Source = "readykit-static"

// Ensure EmergencyInfoProvider implements readykit.Provider at compile time.
var _ readykit.Provider = (*EmergencyInfoProvider)(nil)

// EmergencyInfoProvider emits exactly two generic documents built from the
// location's city and state. It performs no network calls and cannot fail.
type EmergencyInfoProvider struct{}

// NewEmergencyInfoProvider creates an EmergencyInfoProvider.
func NewEmergencyInfoProvider() *EmergencyInfoProvider {
	return &EmergencyInfoProvider{}
}

// Name implements readykit.Provider.
func (p *EmergencyInfoProvider) Name() string { return "emergency-info" }

// Fetch implements readykit.Provider.
func (p *EmergencyInfoProvider) Fetch(_ context.Context, loc readykit.Location) ([]*readykit.Document, error) {
	hospital := readykit.NewDocument(
		fmt.Sprintf("Hospital Information - %s", loc.String()),
		fmt.Sprintf(
			"For medical emergencies in %s, call 911 immediately. "+
				"Hospitals and urgent care facilities near %s can be located by dialing 211 "+
				"or through the %s hospital association directory. "+
				"Keep a list of the two nearest emergency rooms with driving directions in your kit.",
			loc.String(), loc.City, loc.State,
		),
		readykit.CategoryHealth,
		readykit.PriorityHigh,
		Source,
		loc,
	)

	contacts := readykit.NewDocument(
		fmt.Sprintf("Emergency Contacts - %s", loc.String()),
		fmt.Sprintf(
			"Emergency contacts for %s: Police, Fire, Medical: 911. "+
				"Poison Control: 1-800-222-1222. "+
				"Suicide and Crisis Lifeline: 988. "+
				"Community services and shelter referrals: 211. "+
				"Non-emergency city services in %s are typically reachable at 311.",
			loc.String(), loc.City,
		),
		readykit.CategoryEmergency,
		readykit.PriorityCritical,
		Source,
		loc,
	)

	return []*readykit.Document{hospital, contacts}, nil
}
