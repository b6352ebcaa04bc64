package catalog

// Builtin returns the reference catalog for Turkish retail receipts.
// All keywords are pre-normalized (lowercase, Turkish letters folded).
// Declaration order is part of the contract: it is the documented
// tie-break for equal scores. Adding a category requires a new build.
func Builtin() *Catalog {
	return New(builtinDefinitions, tollKeywords)
}

// tollKeywords identify toll/road-fee instruments (motorway and
// bridge passes). They drive the mandatory-review override rather
// than ordinary scoring.
var tollKeywords = []string{
	"hgs",
	"ogs",
	"otoyol",
	"otoban",
	"kopru",
	"gecis",
}

var builtinDefinitions = []Definition{
	{
		ID: "food_drink",
		Merchant: []string{
			"starbucks", "mcdonalds", "burger king", "dominos", "kfc",
			"popeyes", "kahve dunyasi", "simit sarayi", "komagene",
			"kofteci yusuf", "mado", "gloria jeans", "tavuk dunyasi",
			"pizza hut", "sbarro",
		},
		Product: []string{
			"kahve", "latte", "espresso", "cay", "tost", "simit",
			"doner", "kofte", "pide", "lahmacun", "burger", "pizza",
			"corba", "ayran", "menemen", "kunefe", "baklava",
			"sandvic", "salata", "cheesecake", "limonata",
		},
		General: []string{
			"restoran", "restaurant", "lokanta", "kafe", "cafe",
			"pastane", "bufe", "kantin", "yemek",
		},
		Negative: []string{
			"benzin", "motorin", "lpg", "akaryakit",
		},
	},
	{
		ID: "grocery",
		Merchant: []string{
			"migros", "bim", "a101", "sok marketler", "carrefoursa",
			"file market", "metro gross", "macrocenter", "hakmar",
			"tarim kredi",
		},
		Product: []string{
			"ekmek", "sut", "yumurta", "peynir", "zeytin", "makarna",
			"pirinc", "bulgur", "yogurt", "deterjan", "sampuan",
			"sucuk", "sebze", "meyve", "kiyma", "cikolata", "biskuvi",
			"kagit havlu",
		},
		General: []string{
			"market", "supermarket", "bakkal", "manav", "sarkuteri",
			"gida",
		},
		Negative: []string{
			"benzin", "motorin", "lpg",
		},
	},
	{
		ID: "fuel",
		Merchant: []string{
			"opet", "shell", "petrol ofisi", "total energies",
			"aytemiz", "lukoil", "sunpet", "alpet", "moil",
		},
		Product: []string{
			"benzin", "motorin", "lpg", "kursunsuz", "eurodiesel",
			"otogaz",
		},
		General: []string{
			"akaryakit", "istasyon", "litre", "pompa", "yakit",
		},
	},
	{
		ID: TransportID,
		Merchant: []string{
			"iett", "metro istanbul", "izban", "uber", "bitaksi",
			"marti", "obilet", "tcdd", "pegasus", "anadolujet",
		},
		Product: []string{
			"bilet", "seyahat", "yolculuk", "aktarma",
		},
		General: []string{
			"ulasim", "taksi", "otobus", "tren", "vapur", "ucus",
			"terminal", "peron",
		},
	},
	{
		ID: "clothing",
		Merchant: []string{
			"lc waikiki", "defacto", "koton", "mavi", "zara",
			"bershka", "flo", "deichmann", "boyner", "vakko", "penti",
		},
		Product: []string{
			"pantolon", "gomlek", "tisort", "elbise", "ayakkabi",
			"mont", "kazak", "etek", "corap", "ceket", "bluz",
		},
		General: []string{
			"giyim", "tekstil", "butik", "moda",
		},
	},
	{
		ID: "electronics",
		Merchant: []string{
			"teknosa", "mediamarkt", "vatan bilgisayar", "arcelik",
			"vestel", "samsung", "monster notebook",
		},
		Product: []string{
			"telefon", "kulaklik", "sarj aleti", "kablo", "laptop",
			"bilgisayar", "tablet", "televizyon", "klavye",
		},
		General: []string{
			"elektronik", "teknoloji", "aksesuar",
		},
	},
	{
		ID: "health",
		Merchant: []string{
			"eczane", "watsons", "gratis", "rossmann", "acibadem",
			"medicana", "memorial",
		},
		Product: []string{
			"ilac", "vitamin", "krem", "parfum", "dis macunu",
			"maske", "serum", "agri kesici",
		},
		General: []string{
			"saglik", "kozmetik", "dermokozmetik", "hastane",
			"poliklinik",
		},
	},
	{
		ID: "home",
		Merchant: []string{
			"ikea", "koctas", "bauhaus", "english home",
			"madame coco", "karaca", "pasabahce", "tekzen",
		},
		Product: []string{
			"mobilya", "hali", "perde", "tencere", "avize",
			"nevresim", "havlu", "yastik", "tabak", "bardak",
		},
		General: []string{
			"dekorasyon", "zuccaciye", "mefrusat", "hirdavat",
		},
	},
}
