package services

import (
	"fmt"
	"sort"

	"labtrack-backend/models"
)

// ActivitySnapshot is an activity annotated with its resolved assignee names,
// frozen before or after a mutation so the two sides can be diffed without
// touching storage.
type ActivitySnapshot struct {
	ID        uint
	Name      string
	Norma     string
	Price     float64
	Assignees []string
}

// SnapshotActivities freezes activities (with preloaded assignees) for diffing.
func SnapshotActivities(activities []models.Activity) []ActivitySnapshot {
	snapshots := make([]ActivitySnapshot, 0, len(activities))
	for _, a := range activities {
		names := make([]string, 0, len(a.Assignees))
		for _, u := range a.Assignees {
			names = append(names, u.Name)
		}
		sort.Strings(names)
		snapshots = append(snapshots, ActivitySnapshot{
			ID:        a.ID,
			Name:      a.Activity,
			Norma:     a.Norma,
			Price:     a.PrecioSinIVA,
			Assignees: names,
		})
	}
	return snapshots
}

// DiffWorkOrders produces the ordered, human-readable change list between the
// previous and new state of a work order. Volatile timestamps are ignored and
// activities are diffed separately from the scalar fields. An empty result
// means no history entry should be written.
func DiffWorkOrders(before, after models.WorkOrder, beforeActs, afterActs []ActivitySnapshot) []string {
	var changes []string

	diffString(&changes, "Date", before.Date.Format("2006-01-02"), after.Date.Format("2006-01-02"))
	diffString(&changes, "Type", before.Type, after.Type)
	diffString(&changes, "Client", formatUint(before.ClientID), formatUint(after.ClientID))
	diffString(&changes, "Contact", formatUintPtr(before.ContactID), formatUintPtr(after.ContactID))
	diffString(&changes, "Product", before.Product, after.Product)
	diffString(&changes, "Brand", before.Brand, after.Brand)
	diffString(&changes, "Model", before.Model, after.Model)
	diffString(&changes, "Seal number", before.SealNumber, after.SealNumber)
	diffString(&changes, "Observations", before.Observations, after.Observations)
	diffString(&changes, "Collaborator observations", before.CollaboratorObservations, after.CollaboratorObservations)
	diffString(&changes, "Status", before.Status, after.Status)
	diffString(&changes, "Authorized", formatBool(before.Authorized), formatBool(after.Authorized))
	diffString(&changes, "Quotation amount", formatAmount(before.QuotationAmount), formatAmount(after.QuotationAmount))
	diffString(&changes, "Quotation details", before.QuotationDetails, after.QuotationDetails)
	diffString(&changes, "Disposition", before.Disposition, after.Disposition)
	diffString(&changes, "Contract type", before.ContractType, after.ContractType)

	changes = append(changes, diffActivities(beforeActs, afterActs)...)
	return changes
}

func diffActivities(before, after []ActivitySnapshot) []string {
	var changes []string

	byID := make(map[uint]ActivitySnapshot, len(before))
	for _, a := range before {
		byID[a.ID] = a
	}
	seen := make(map[uint]bool, len(after))

	for _, a := range after {
		old, exists := byID[a.ID]
		if !exists {
			changes = append(changes, fmt.Sprintf("Activity %q added", a.Name))
			for _, name := range a.Assignees {
				changes = append(changes, fmt.Sprintf("%s assigned to activity %q", name, a.Name))
			}
			continue
		}
		seen[a.ID] = true

		if old.Name != a.Name {
			changes = append(changes, fmt.Sprintf("Activity renamed from %q to %q", old.Name, a.Name))
		}
		if old.Norma != a.Norma {
			changes = append(changes, fmt.Sprintf("Activity %q standard changed from %q to %q", a.Name, old.Norma, a.Norma))
		}
		if old.Price != a.Price {
			changes = append(changes, fmt.Sprintf("Activity %q price changed from %s to %s", a.Name, formatAmount(old.Price), formatAmount(a.Price)))
		}

		oldNames := toSet(old.Assignees)
		newNames := toSet(a.Assignees)
		for _, name := range a.Assignees {
			if !oldNames[name] {
				changes = append(changes, fmt.Sprintf("%s assigned to activity %q", name, a.Name))
			}
		}
		for _, name := range old.Assignees {
			if !newNames[name] {
				changes = append(changes, fmt.Sprintf("%s unassigned from activity %q", name, a.Name))
			}
		}
	}

	for _, old := range before {
		if !seen[old.ID] {
			changes = append(changes, fmt.Sprintf("Activity %q removed", old.Name))
		}
	}

	return changes
}

func diffString(changes *[]string, field, before, after string) {
	if before != after {
		*changes = append(*changes, fmt.Sprintf("Field %q changed from %q to %q", field, before, after))
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func formatUint(v uint) string {
	return fmt.Sprintf("%d", v)
}

func formatUintPtr(v *uint) string {
	if v == nil {
		return ""
	}
	return formatUint(*v)
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
