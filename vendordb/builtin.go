package vendordb

// builtinVendors covers the vendor IDs most commonly seen in Type-C
// discover identity responses: SoC and PD controller makers, dock and
// cable vendors, and the large host OEMs.
var builtinVendors = map[uint16]string{
	0x0403: "Future Technology Devices International, Ltd",
	0x045b: "Hitachi, Ltd",
	0x045e: "Microsoft Corp.",
	0x046d: "Logitech, Inc.",
	0x047f: "Plantronics, Inc.",
	0x04b4: "Cypress Semiconductor Corp.",
	0x04e8: "Samsung Electronics Co., Ltd",
	0x04f2: "Chicony Electronics Co., Ltd",
	0x0525: "Netchip Technology, Inc.",
	0x05ac: "Apple, Inc.",
	0x05c6: "Qualcomm, Inc.",
	0x05e3: "Genesys Logic, Inc.",
	0x067b: "Prolific Technology, Inc.",
	0x06cb: "Synaptics, Inc.",
	0x0781: "SanDisk Corp.",
	0x0b05: "ASUSTek Computer, Inc.",
	0x0b95: "ASIX Electronics Corp.",
	0x0bb4: "HTC (High Tech Computer Corp.)",
	0x0bda: "Realtek Semiconductor Corp.",
	0x0db0: "Micro Star International",
	0x0fce: "Sony Mobile Communications AB",
	0x1038: "SteelSeries ApS",
	0x1050: "Yubico.com",
	0x106b: "Apple, Inc.",
	0x1286: "Marvell Semiconductor, Inc.",
	0x12d1: "Huawei Technologies Co., Ltd.",
	0x13b1: "Linksys",
	0x13fe: "Kingston Technology Company Inc.",
	0x17e9: "DisplayLink Corp.",
	0x17ef: "Lenovo",
	0x18d1: "Google Inc.",
	0x1949: "Lab126, Inc.",
	0x19f7: "RODE Microphones",
	0x1a40: "Terminus Technology Inc.",
	0x1d5c: "Fresco Logic",
	0x1d6b: "Linux Foundation",
	0x2109: "VIA Labs, Inc.",
	0x2188: "CalDigit, Inc.",
	0x22b8: "Motorola PCS",
	0x2717: "Xiaomi Inc.",
	0x2833: "Oculus VR, Inc.",
	0x291a: "Anker Innovations Limited",
	0x2b01: "Framework Computer Inc",
	0x2e98: "Parade Technologies, Inc.",
	0x3146: "Texas Instruments",
	0x413c: "Dell Computer Corp.",
	0x8086: "Intel Corp.",
	0x8087: "Intel Corp.",
}
