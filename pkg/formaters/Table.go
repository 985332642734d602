package formaters

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/simplecontainer/deployer/pkg/group"
	"github.com/simplecontainer/deployer/pkg/plan"
)

func newTable(out io.Writer, columns ...interface{}) table.Table {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	return table.New(columns...).
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt).
		WithWriter(out)
}

func Containers(out io.Writer, rows []HostContainer, now time.Time) {
	tbl := newTable(out, "Host", "ID", "Image", "Ports", "Status", "Created")

	for _, row := range rows {
		ports := make([]string, 0, len(row.Container.Ports))

		for _, port := range row.Container.Ports {
			if port.PublicPort == 0 {
				ports = append(ports, fmt.Sprintf("%d/%s", port.PrivatePort, port.Type))
				continue
			}

			ports = append(ports, fmt.Sprintf("%d->%d/%s", port.PublicPort, port.PrivatePort, port.Type))
		}

		tbl.AddRow(
			row.Host,
			row.Container.ShortID(),
			row.Container.Image,
			strings.Join(ports, ", "),
			row.Container.Status,
			Ago(time.Unix(row.Container.Created, 0), now),
		)
	}

	tbl.Print()
}

// Tags prints the tag of every host and marks the canary, if any.
func Tags(out io.Writer, assignments []group.TagAssignment, canary *group.TagAssignment) {
	tbl := newTable(out, "Host", "Tag", "Canary")

	for _, assignment := range assignments {
		mark := ""
		if canary != nil && canary.Host.Hostname == assignment.Host.Hostname && canary.Tag == assignment.Tag {
			mark = "yes"
		}

		tbl.AddRow(assignment.Host.Hostname, assignment.Tag, mark)
	}

	tbl.Print()
}

func RegistryTags(out io.Writer, tags map[string]string) {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}

	sort.Strings(names)

	tbl := newTable(out, "Tag", "Digest")

	for _, name := range names {
		tbl.AddRow(name, tags[name])
	}

	tbl.Print()
}

func Plan(out io.Writer, p *plan.Plan) {
	if p.Empty() {
		fmt.Fprintf(out, "%s is up to date on every host\n", p.Service)
		return
	}

	tbl := newTable(out, "Host", "Change", "Path", "From", "To")

	for _, change := range p.Changes {
		tbl.AddRow(change.Host, change.Type, change.Path, value(change.From), value(change.To))
	}

	tbl.Print()
}

func value(v interface{}) string {
	if v == nil {
		return "-"
	}

	return fmt.Sprintf("%v", v)
}
