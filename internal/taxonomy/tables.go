package taxonomy

// removableSelectors name structural or decorative elements that never
// contribute body text.
var removableSelectors = []string{
	".reference",
	".references",
	".reflist",
	".citation",
	".navbox",
	".infobox",
	".mw-editsection",
	".metadata",
	".hatnote",
	".mw-empty-elt",
	".catlinks",
	".ambox",
	".tmbox",
	".messagebox",
	".plainlist",
	".side-box",
	".sisterproject",
	".dablink",
	".mw-jump-link",
	".mw-authority-control",
	".portal",
	".noprint",
	".nomobile",
	".metadata-columns",
	".collapsible",
	".collapsible-list",
	".mwe-math-element",
	".mw-references-wrap",
	".printfooter",
	".mw-footer",
	".vector-sticky-header",
	".mw-indicators",
	".shortdescription",
	".mw-parser-output .toc",
	"table",
	"img",
	"style",
	"link",
	"script",
	"sup",
}

// sectionTitles are headings whose whole section is dropped. Matching is
// case-insensitive; entries are folded when the taxonomy is built.
var sectionTitles = []string{
	"references",
	"reference",
	"notes",
	"bibliography",
	"further reading",
	"external links",
	"see also",
	"参考资料",
	"參考資料",
	"參考資料與註解",
	"参考文献",
	"參考文獻",
	"註解",
	"注释",
	"注釋",
	"外部链接",
	"外部連結",
	"外部連結與資料",
	"参见",
	"參見",
	"延伸閱讀",
	"延伸阅读",
	"参考",
	"参看",
	"參考",
	"另見",
	"相關條目",
	"相关条目",
	"腳註",
	"脚注",
}

// noiseLinePatterns match whole cleaned lines that are navigation hints,
// boilerplate notices or UI residue. They are compiled case-insensitive.
var noiseLinePatterns = []string{
	`^跳转到：`,
	`^Navigation menu$`,
	`^This article.*requires additional citations`,
	`^隐藏\s*$`,
	`^分类：`,
	`^Category:`,
	`^Portal:`,
	`^来自维基百科，`,
	`^From Wikipedia,`,
	`^查看源代码$`,
	`^Read$`,
	`^Edit$`,
	`^新增段落$`,
}

var blockTags = []string{
	"p", "div", "section", "article", "header", "footer", "aside",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li", "dl", "dt", "dd",
	"pre", "blockquote", "figure", "table",
}

// landingFragments identify site home pages across languages.
var landingFragments = []string{
	"/wiki/Main_Page",
	"/wiki/Wikipedia:%E9%A6%96%E9%A1%B5",
	"/wiki/Wikipedia:首页",
	"/wiki/Wikipedia:首頁",
	"/wiki/Wikipedia:メインページ",
	"/wiki/Wikipedia:대문",
	"/wiki/Wikipédia:Accueil_principal",
	"Special:MainPage",
	"Special:首页",
}
