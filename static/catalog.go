package static

import (
	"fmt"

	"github.com/localready/readykit"
)

// Catalog returns the hand-authored baseline knowledge-base entries for a
// location. These are the offline foundation: they never go stale the way
// refreshed entries do, and the seed command writes them before any network
// refresh runs.
func Catalog(loc readykit.Location) []*readykit.Document {
	return []*readykit.Document{
		readykit.NewDocument(
			"Tornado Safety Procedures",
			"When a tornado warning is issued, move immediately to a basement or an interior "+
				"room on the lowest floor, away from windows. Cover your head and neck with your "+
				"arms and put as many walls as possible between you and the outside. Do not shelter "+
				"under a highway overpass. After the storm passes, watch for downed power lines and "+
				"gas leaks before leaving shelter.",
			readykit.CategoryEmergency,
			readykit.PriorityCritical,
			Source,
			loc,
		),
		readykit.NewDocument(
			"Severe Winter Storm Preparedness",
			"Before a winter storm, stock water, non-perishable food, and medications for at "+
				"least three days. Keep flashlights, batteries, and a battery or crank radio within "+
				"reach. If the power fails, close off unused rooms to conserve heat and never run a "+
				"generator or grill indoors. Check on elderly neighbors once it is safe to do so.",
			readykit.CategoryEmergency,
			readykit.PriorityHigh,
			Source,
			loc,
		),
		readykit.NewDocument(
			"Extended Power Outage Checklist",
			"During an extended outage, keep refrigerator and freezer doors closed; food keeps "+
				"roughly four hours in a refrigerator and 48 hours in a full freezer. Unplug "+
				"sensitive electronics to avoid surge damage when power returns. Use flashlights "+
				"rather than candles. Report the outage to your utility rather than assuming it is "+
				"already known.",
			readykit.CategoryEmergency,
			readykit.PriorityHigh,
			Source,
			loc,
		),
		readykit.NewDocument(
			"Basic First Aid Kit Contents",
			"A household first aid kit should contain adhesive bandages in several sizes, "+
				"sterile gauze pads, adhesive tape, antiseptic wipes, antibiotic ointment, "+
				"tweezers, scissors, disposable gloves, a digital thermometer, pain relievers, "+
				"and any personal prescription medications. Check expiration dates twice a year.",
			readykit.CategoryHealth,
			readykit.PriorityMedium,
			Source,
			loc,
		),
		readykit.NewDocument(
			"Boil Water Advisory Guidance",
			"Under a boil water advisory, bring water to a rolling boil for one full minute "+
				"before drinking, cooking, brushing teeth, or making ice. Bottled water is a safe "+
				"alternative. Dishwashers with a sanitize cycle are generally safe; otherwise rinse "+
				"hand-washed dishes in a diluted bleach solution.",
			readykit.CategoryHealth,
			readykit.PriorityMedium,
			Source,
			loc,
		),
		readykit.NewDocument(
			fmt.Sprintf("Household Evacuation Planning - %s", loc.String()),
			fmt.Sprintf(
				"Agree on two meeting places in advance: one just outside your home and one "+
					"outside your neighborhood. Identify two routes out of %s and keep at least "+
					"half a tank of fuel during severe weather season. Prepare a go-bag per person "+
					"with water, snacks, medications, copies of identification, and phone chargers.",
				loc.City,
			),
			readykit.CategoryLocalInfo,
			readykit.PriorityMedium,
			Source,
			loc,
		),
	}
}
