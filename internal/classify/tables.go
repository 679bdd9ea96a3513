package classify

// DefaultCategoryRules returns the built-in category pattern table.
//
// Order encodes priority: a name matching several rules resolves to the
// earliest one, so more specific component categories come before broad
// catch-alls like Laptop and Prebuilt PCs.
func DefaultCategoryRules() []Rule {
	return []Rule{
		{Label: "GPU", Patterns: []string{"rtx", "gtx", "geforce", "radeon rx", "graphics card", "video card", "gpu"}},
		{Label: "CPU", Patterns: []string{"ryzen", "core i3", "core i5", "core i7", "core i9", "threadripper", "processor", "cpu"}},
		{Label: "Motherboard", Patterns: []string{"motherboard", "mobo", "mainboard", "b550", "b650", "x570", "x670", "z690", "z790"}},
		{Label: "RAM", Patterns: []string{"ddr4", "ddr5", "memory kit", " ram", "dimm"}},
		{Label: "Storage", Patterns: []string{"nvme", "ssd", "hdd", "hard drive", "hard disk", "m.2", "sata"}},
		{Label: "PSU", Patterns: []string{"power supply", "psu", "smps", "80 plus", "80+"}},
		{Label: "Cooler", Patterns: []string{"cooler", "aio", "liquid cooling", "heatsink", "cooling fan"}},
		{Label: "Cabinet", Patterns: []string{"cabinet", "chassis", "mid tower", "full tower", "pc case"}},
		{Label: "Monitor", Patterns: []string{"monitor", "144hz", "165hz", "240hz", "ips panel"}},
		{Label: "Keyboard", Patterns: []string{"keyboard", "keycap"}},
		{Label: "Mouse", Patterns: []string{"mouse", "mice"}},
		{Label: "Headset", Patterns: []string{"headset", "headphone", "earphone", "earbuds"}},
		{Label: "Laptop", Patterns: []string{"laptop", "notebook", "ultrabook"}},
		{Label: "Prebuilt PCs", Patterns: []string{"desktop", "prebuilt", "gaming pc", "all-in-one", "mini pc"}},
		{Label: "Networking", Patterns: []string{"router", "wifi", "mesh", "ethernet"}},
		{Label: "Accessories", Patterns: []string{"mousepad", "mouse pad", "webcam", "usb hub", "extension cable", "thermal paste"}},
	}
}

// DefaultBrandRules returns the built-in brand pattern table.
//
// Board-partner brands come before chip makers so "MSI Radeon" resolves to
// MSI, not AMD.
func DefaultBrandRules() []Rule {
	return []Rule{
		{Label: "MSI", Patterns: []string{"msi"}},
		{Label: "ASUS", Patterns: []string{"asus", "rog strix", "tuf gaming"}},
		{Label: "Gigabyte", Patterns: []string{"gigabyte", "aorus"}},
		{Label: "ASRock", Patterns: []string{"asrock"}},
		{Label: "Zotac", Patterns: []string{"zotac"}},
		{Label: "Corsair", Patterns: []string{"corsair", "vengeance"}},
		{Label: "G.Skill", Patterns: []string{"g.skill", "gskill", "trident z"}},
		{Label: "Kingston", Patterns: []string{"kingston", "hyperx fury"}},
		{Label: "Crucial", Patterns: []string{"crucial"}},
		{Label: "Samsung", Patterns: []string{"samsung"}},
		{Label: "Western Digital", Patterns: []string{"western digital", "wd black", "wd blue", "wd green"}},
		{Label: "Seagate", Patterns: []string{"seagate", "barracuda", "firecuda"}},
		{Label: "Cooler Master", Patterns: []string{"cooler master", "coolermaster"}},
		{Label: "NZXT", Patterns: []string{"nzxt", "kraken"}},
		{Label: "Deepcool", Patterns: []string{"deepcool"}},
		{Label: "Antec", Patterns: []string{"antec"}},
		{Label: "Logitech", Patterns: []string{"logitech", "logitech g"}},
		{Label: "Razer", Patterns: []string{"razer"}},
		{Label: "SteelSeries", Patterns: []string{"steelseries"}},
		{Label: "HyperX", Patterns: []string{"hyperx"}},
		{Label: "Dell", Patterns: []string{"dell", "alienware"}},
		{Label: "HP", Patterns: []string{"hp ", "omen", "pavilion", "victus"}},
		{Label: "Lenovo", Patterns: []string{"lenovo", "thinkpad", "legion", "ideapad"}},
		{Label: "Acer", Patterns: []string{"acer", "predator", "nitro"}},
		{Label: "LG", Patterns: []string{"lg ", "ultragear"}},
		{Label: "BenQ", Patterns: []string{"benq", "zowie"}},
		{Label: "TP-Link", Patterns: []string{"tp-link", "tplink", "archer"}},
		{Label: "Intel", Patterns: []string{"intel"}},
		{Label: "AMD", Patterns: []string{"amd", "ryzen", "radeon"}},
		{Label: "NVIDIA", Patterns: []string{"nvidia", "founders edition"}},
	}
}
