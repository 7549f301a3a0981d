package seed

// developerNames and categoryNames are seeded in this order; games refer to
// them by name.
var developerNames = []string{
	"CD Projekt Red",
	"Rockstar Games",
	"Valve Corporation",
	"FromSoftware",
	"Bethesda Game Studios",
	"Nintendo EPD",
	"Blizzard Entertainment",
	"Ubisoft Montreal",
	"Electronic Arts",
	"Naughty Dog",
}

var categoryNames = []string{
	"RPG",
	"Action-Adventure",
	"Shooter",
	"Souls-like",
	"Open World",
	"Puzzle",
	"MOBA",
	"Strategy",
	"Sports",
}

// gameFixture is one seeded game.  Decimals are strings at the stored
// precision (two places).
type gameFixture struct {
	Name        string
	Developer   string
	Category    string
	MinCPU      string
	MinMemory   int64
	Multiplayer bool
	ReleaseYear int
	Price       string
	Amount      int64
}

var gameFixtures = []gameFixture{
	{"The Witcher 3: Wild Hunt", "CD Projekt Red", "RPG", "3.30", 8192, false, 2015, "39.99", 150},
	{"Cyberpunk 2077", "CD Projekt Red", "RPG", "3.20", 8192, false, 2020, "59.99", 200},

	{"Grand Theft Auto V", "Rockstar Games", "Action-Adventure", "2.40", 4096, true, 2013, "29.99", 300},
	{"Red Dead Redemption 2", "Rockstar Games", "Action-Adventure", "2.80", 8192, true, 2018, "59.99", 175},

	{"Half-Life: Alyx", "Valve Corporation", "Shooter", "3.00", 12288, false, 2020, "29.99", 120},
	{"Portal 2", "Valve Corporation", "Puzzle", "3.00", 2048, true, 2011, "29.99", 250},
	{"Counter-Strike 2", "Valve Corporation", "Shooter", "3.00", 8192, true, 2023, "29.99", 500},
	{"Half-Life", "Valve Corporation", "Shooter", "0.50", 512, false, 1998, "29.99", 100},
	{"Counter-Strike 1.6", "Valve Corporation", "Shooter", "0.50", 512, true, 2000, "29.99", 150},
	{"Portal", "Valve Corporation", "Puzzle", "1.70", 512, false, 2007, "29.99", 200},

	{"Elden Ring", "FromSoftware", "Souls-like", "3.30", 12288, true, 2022, "29.99", 220},
	{"Dark Souls III", "FromSoftware", "Souls-like", "3.10", 8192, true, 2016, "29.99", 180},
	{"Sekiro: Shadows Die Twice", "FromSoftware", "Souls-like", "3.00", 8192, false, 2019, "29.99", 160},

	{"The Elder Scrolls V: Skyrim", "Bethesda Game Studios", "RPG", "2.00", 4096, false, 2011, "29.99", 350},
	{"Fallout 4", "Bethesda Game Studios", "RPG", "2.80", 8192, false, 2015, "29.99", 200},
	{"The Elder Scrolls III: Morrowind", "Bethesda Game Studios", "RPG", "0.50", 256, false, 2002, "29.99", 80},

	{"The Legend of Zelda: Breath of the Wild", "Nintendo EPD", "Open World", "1.02", 4096, false, 2017, "29.99", 280},

	{"Overwatch 2", "Blizzard Entertainment", "Shooter", "2.50", 6144, true, 2022, "29.99", 400},
	{"Diablo IV", "Blizzard Entertainment", "RPG", "2.50", 8192, true, 2023, "29.99", 300},
	{"World of Warcraft", "Blizzard Entertainment", "RPG", "2.70", 8192, true, 2004, "29.99", 500},
	{"StarCraft II", "Blizzard Entertainment", "Strategy", "2.60", 4096, true, 2010, "29.99", 220},
	{"StarCraft", "Blizzard Entertainment", "Strategy", "0.09", 128, true, 1998, "29.99", 120},
	{"Warcraft III: Reign of Chaos", "Blizzard Entertainment", "Strategy", "0.40", 256, true, 2002, "29.99", 150},
	{"Diablo II", "Blizzard Entertainment", "RPG", "0.23", 256, true, 2000, "29.99", 100},

	{"Assassin's Creed Valhalla", "Ubisoft Montreal", "Action-Adventure", "3.00", 8192, false, 2020, "29.99", 190},
	{"Far Cry 6", "Ubisoft Montreal", "Shooter", "3.20", 8192, true, 2021, "29.99", 170},

	{"EA SPORTS FC 24", "Electronic Arts", "Sports", "3.10", 8192, true, 2023, "29.99", 350},
	{"Apex Legends", "Electronic Arts", "Shooter", "3.00", 6144, true, 2019, "29.99", 450},

	{"The Last of Us Part I", "Naughty Dog", "Action-Adventure", "3.50", 16384, false, 2022, "29.99", 160},
	{"Uncharted 4: A Thief's End", "Naughty Dog", "Action-Adventure", "3.50", 8192, true, 2016, "29.99", 140},
}
