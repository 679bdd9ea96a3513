package normalize

import "github.com/oneiro-labs/shelfmark/internal/model"

// DefaultGroups returns the built-in canonical category table.
//
// The alias sets are business data accumulated from years of inconsistent
// labeling; some mappings deliberately collapse near-synonyms ("Desktop" and
// "PC" both land in "Prebuilt PCs"). Integrators can replace the table via
// the external data file.
func DefaultGroups() []model.CategoryGroup {
	return []model.CategoryGroup{
		{
			Canonical: "GPU",
			Aliases:   []string{"Graphics Card", "Graphic Card", "Video Card", "GPUs", "Graphics Cards"},
			Keywords:  []string{"gpu", "graphics", "geforce", "radeon"},
		},
		{
			Canonical: "CPU",
			Aliases:   []string{"Processor", "Processors", "CPUs"},
			Keywords:  []string{"cpu", "processor"},
		},
		{
			Canonical: "Motherboard",
			Aliases:   []string{"Motherboards", "Mother Board", "Mainboard"},
			Keywords:  []string{"motherboard", "mainboard"},
		},
		{
			Canonical: "RAM",
			Aliases:   []string{"Memory", "Memory Kit", "RAM Module"},
			Keywords:  []string{"ram", "memory", "ddr"},
		},
		{
			Canonical: "Storage",
			Aliases:   []string{"SSD", "HDD", "Hard Drive", "Hard Disk", "Hard Disk Drive", "Drives"},
			Keywords:  []string{"storage", "ssd", "hdd", "nvme", "drive"},
		},
		{
			Canonical: "PSU",
			Aliases:   []string{"Power Supply", "Power Supplies", "SMPS"},
			Keywords:  []string{"psu", "power", "smps"},
		},
		{
			Canonical: "Cooler",
			Aliases:   []string{"CPU Cooler", "Coolers", "Cooling"},
			Keywords:  []string{"cooler", "cooling", "aio"},
		},
		{
			Canonical: "Cabinet",
			Aliases:   []string{"Case", "PC Case", "Chassis", "Cabinets"},
			Keywords:  []string{"cabinet", "chassis", "tower"},
		},
		{
			Canonical: "Monitor",
			Aliases:   []string{"Monitors", "Display", "Displays", "Screen"},
			Keywords:  []string{"monitor", "display", "screen"},
		},
		{
			Canonical: "Keyboard",
			Aliases:   []string{"Keyboards"},
			Keywords:  []string{"keyboard"},
		},
		{
			Canonical: "Mouse",
			Aliases:   []string{"Mice", "Gaming Mouse"},
			Keywords:  []string{"mouse", "mice"},
		},
		{
			Canonical: "Headset",
			Aliases:   []string{"Headsets", "Headphone", "Headphones", "Earphones"},
			Keywords:  []string{"headset", "headphone", "audio"},
		},
		{
			Canonical: "Laptop",
			Aliases:   []string{"Laptops", "Notebook", "Notebooks"},
			Keywords:  []string{"laptop", "notebook"},
		},
		{
			Canonical: "Prebuilt PCs",
			Aliases:   []string{"Desktop", "Desktops", "PC", "Prebuilt", "Prebuilt PC", "Gaming PC"},
			Keywords:  []string{"desktop", "prebuilt"},
		},
		{
			Canonical: "Networking",
			Aliases:   []string{"Router", "Routers", "Network"},
			Keywords:  []string{"networking", "router", "wifi"},
		},
		{
			Canonical: "Accessories",
			Aliases:   []string{"Accessory", "Peripherals"},
			Keywords:  []string{"accessory", "peripheral"},
		},
	}
}
