package catalog

// defaultEquitySymbols is the embedded BIST-100 watchlist, exchange-suffixed.
// Duplicates are tolerated here; the registry de-duplicates on build.
var defaultEquitySymbols = []string{
	"AKBNK.IS", "ASELS.IS", "BIMAS.IS", "EKGYO.IS", "EREGL.IS", "FROTO.IS",
	"GARAN.IS", "ISCTR.IS", "KCHOL.IS", "PETKM.IS", "SAHOL.IS", "SISE.IS",
	"TCELL.IS", "THYAO.IS", "TUPRS.IS", "VAKBN.IS", "YKBNK.IS", "ARCLK.IS",
	"HALKB.IS", "KOZAL.IS", "PGSUS.IS", "SASA.IS", "TAVHL.IS", "TOASO.IS",
	"TTKOM.IS", "VESBE.IS", "YATAS.IS", "ALARK.IS", "BRSAN.IS", "DOHOL.IS",
	"ENJSA.IS", "GUBRF.IS", "HEKTS.IS", "KARSN.IS", "KRDMD.IS", "OTKAR.IS",
	"OYAKC.IS", "QUAGR.IS", "SKBNK.IS", "TTRAK.IS", "ULKER.IS", "VESTL.IS",
	"ZOREN.IS", "AEFES.IS", "AKSA.IS", "AKSGY.IS", "ALGYO.IS", "AYGAZ.IS",
	"BAGFS.IS", "BLCYT.IS", "BRISA.IS", "CEMTS.IS", "CIMSA.IS", "DEVA.IS",
	"DOAS.IS", "ECILC.IS", "EGEEN.IS", "ENKAI.IS", "ERBOS.IS", "FENER.IS",
	"GENIL.IS", "GESAN.IS", "GOLTS.IS", "GOZDE.IS", "GSDHO.IS", "INDES.IS",
	"ISGYO.IS", "ISMEN.IS", "KONTR.IS", "KORDS.IS", "KUTPO.IS", "MAVI.IS",
	"MGROS.IS", "NTHOL.IS", "ODAS.IS", "PRKME.IS", "RALYH.IS", "SOKM.IS",
	"TKFEN.IS", "TRKCM.IS", "TURSG.IS", "AFYON.IS", "ANHYT.IS",
}
