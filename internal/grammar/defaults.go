package grammar

// Built-in grammars for the statement sources we have samples for. Literal
// order matters in two ways: registration order drives detection fallback,
// and keyword group order decides ties during categorization.
//
// Transaction patterns capture (date, description, amount), in that order.

func nubankSpec() Spec {
	return Spec{
		SourceID:           "nubank",
		NameLiterals:       []string{"nubank", "nu pagamentos"},
		TransactionPattern: `(\d{2}/\d{2})\s+(.+?)\s+(R\$\s*[\d.,]+)`,
		InstallmentPattern: `(\d+)/(\d+)`,
		DateFormat:         "02/01",
		CurrencyPattern:    `R\$\s*([\d.,]+)`,
		CategoryKeywords: []KeywordGroup{
			{Category: "alimentacao", Keywords: []string{"restaurante", "lanchonete", "delivery", "ifood", "uber eats"}},
			{Category: "transporte", Keywords: []string{"uber", "99", "posto", "combustivel", "estacionamento"}},
			{Category: "saude", Keywords: []string{"farmacia", "drogaria", "hospital", "clinica", "medico"}},
			{Category: "compras", Keywords: []string{"magazine", "americanas", "mercado livre", "amazon"}},
			{Category: "servicos", Keywords: []string{"netflix", "spotify", "internet", "telefone"}},
		},
	}
}

func itauSpec() Spec {
	return Spec{
		SourceID:           "itau",
		NameLiterals:       []string{"itau", "itaú"},
		TransactionPattern: `(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d.,]+)`,
		InstallmentPattern: `PARC\s*(\d+)/(\d+)`,
		DateFormat:         "02/01/2006",
		CurrencyPattern:    `([\d.,]+)`,
		CategoryKeywords: []KeywordGroup{
			{Category: "alimentacao", Keywords: []string{"rest", "lanch", "delivery", "ifood"}},
			{Category: "transporte", Keywords: []string{"uber", "taxi", "posto", "shell", "br"}},
			{Category: "saude", Keywords: []string{"farm", "drog", "hosp", "clin"}},
			{Category: "compras", Keywords: []string{"mag", "loja", "shopping"}},
			{Category: "servicos", Keywords: []string{"netflix", "spotify", "tim", "vivo"}},
		},
	}
}

func bradescoSpec() Spec {
	return Spec{
		SourceID:           "bradesco",
		NameLiterals:       []string{"bradesco"},
		TransactionPattern: `(\d{2}/\d{2})\s+(.+?)\s+(\d+,\d{2})`,
		InstallmentPattern: `(\d+)ª\s*DE\s*(\d+)`,
		DateFormat:         "02/01",
		CurrencyPattern:    `(\d+,\d{2})`,
		CategoryKeywords: []KeywordGroup{
			{Category: "alimentacao", Keywords: []string{"rest", "alim", "delivery"}},
			{Category: "transporte", Keywords: []string{"combustivel", "posto", "uber"}},
			{Category: "saude", Keywords: []string{"farmacia", "saude"}},
			{Category: "compras", Keywords: []string{"varejo", "loja"}},
			{Category: "servicos", Keywords: []string{"assinatura", "streaming"}},
		},
	}
}

func santanderSpec() Spec {
	return Spec{
		SourceID:           "santander",
		NameLiterals:       []string{"santander"},
		TransactionPattern: `(\d{2}/\d{2}/\d{2})\s+(.+?)\s+([\d.,]+)`,
		InstallmentPattern: `PARCELA\s*(\d+)/(\d+)`,
		DateFormat:         "02/01/06",
		CurrencyPattern:    `([\d.,]+)`,
		CategoryKeywords: []KeywordGroup{
			{Category: "alimentacao", Keywords: []string{"restaurante", "alimentacao"}},
			{Category: "transporte", Keywords: []string{"combustivel", "transporte"}},
			{Category: "saude", Keywords: []string{"saude", "farmacia"}},
			{Category: "compras", Keywords: []string{"compras", "varejo"}},
			{Category: "servicos", Keywords: []string{"servicos", "utilidades"}},
		},
	}
}

func btgSpec() Spec {
	return Spec{
		SourceID:           "btg",
		NameLiterals:       []string{"btg pactual", "btg"},
		TransactionPattern: `(\d{2}\s+\w{3})\s+(.+?)\s+(R\$\s*[\d.,]+)`,
		InstallmentPattern: `\((\d+)/(\d+)\)`,
		DateFormat:         "02 Jan",
		CurrencyPattern:    `R\$\s*([\d.,]+)`,
		CategoryKeywords: []KeywordGroup{
			{Category: "alimentacao", Keywords: []string{"restaurante", "bread", "chef", "california"}},
			{Category: "transporte", Keywords: []string{"posto", "grid", "combustivel"}},
			{Category: "saude", Keywords: []string{"farmacia", "clinica", "medico"}},
			{Category: "compras", Keywords: []string{"damyller", "calcad", "livraria", "shopping"}},
			{Category: "servicos", Keywords: []string{"mensalidade", "hotel", "hair"}},
		},
	}
}

func unicredSpec() Spec {
	return Spec{
		SourceID:           "unicred",
		NameLiterals:       []string{"unicred"},
		TransactionPattern: `(\d{1,2}/\w{3})\s+(.+?)\s+(R\$\s*[\d.,]+)`,
		InstallmentPattern: `Parc\.(\d+)/(\d+)`,
		DateFormat:         "2/Jan",
		CurrencyPattern:    `R\$\s*([\d.,]+)`,
		NoisePatterns: []string{
			`^(?:R\$\s*)+$`,
			`^\d{20,}$`,
		},
		CategoryKeywords: []KeywordGroup{
			{Category: "alimentacao", Keywords: []string{"angeloni", "cooper", "nosso pao", "mc donalds", "pizzaria", "cantina", "burger", "lanches", "cafe"}},
			{Category: "transporte", Keywords: []string{"posto", "postos"}},
			{Category: "saude", Keywords: []string{"farmacia", "drogaria", "raia"}},
			{Category: "compras", Keywords: []string{"garden", "magazine"}},
			{Category: "servicos", Keywords: []string{"seguros", "anuidade", "live"}},
		},
	}
}

func c6Spec() Spec {
	return Spec{
		SourceID:           "c6",
		NameLiterals:       []string{"c6 carbon", "c6 bank", "banco c6", "c6"},
		TransactionPattern: `(\d{1,2}\s+\w{3})\s+(.+?)\s+([\d.,]+)$`,
		InstallmentPattern: `-\s*Parcela\s+(\d+)/(\d+)`,
		DateFormat:         "2 Jan",
		CurrencyPattern:    `([\d.,]+)`,
		NoisePatterns: []string{
			`^(?:R\$\s*)+$`,
			`^\d{20,}$`,
		},
		CategoryKeywords: []KeywordGroup{
			{Category: "alimentacao", Keywords: []string{"ifood", "restaurante"}},
			{Category: "transporte", Keywords: []string{"latam", "uber", "posto"}},
			{Category: "saude", Keywords: []string{"farmacia", "clinica"}},
			{Category: "compras", Keywords: []string{"amazon", "flexform", "mysadigital"}},
			{Category: "servicos", Keywords: []string{"paypal", "microsoft", "google", "prime", "xbox", "anuidade"}},
		},
	}
}

func caixaSpec() Spec {
	return Spec{
		SourceID:           "caixa",
		NameLiterals:       []string{"caixa", "cef"},
		TransactionPattern: `(\d{2}/\d{2}/\d{4})\s+(.+?)\s+(R\$\s*[\d.,]+)`,
		InstallmentPattern: `(\d+)/(\d+)\s*PARCELA`,
		DateFormat:         "02/01/2006",
		CurrencyPattern:    `R\$\s*([\d.,]+)`,
		CategoryKeywords: []KeywordGroup{
			{Category: "alimentacao", Keywords: []string{"aliment", "rest", "lanch"}},
			{Category: "transporte", Keywords: []string{"combust", "posto", "transport"}},
			{Category: "saude", Keywords: []string{"farm", "saude", "medic"}},
			{Category: "compras", Keywords: []string{"loja", "magazine", "compra"}},
			{Category: "servicos", Keywords: []string{"servico", "assinatura"}},
		},
	}
}

// DefaultSourceID is the grammar assumed when nothing else matches.
const DefaultSourceID = "nubank"

// DefaultSpecs returns the built-in specs in detection order. Sources whose
// name literals overlap are ordered longest-literal first, and c6 is checked
// before caixa so "c6" inside other text never falls through.
func DefaultSpecs() []Spec {
	return []Spec{
		nubankSpec(),
		itauSpec(),
		bradescoSpec(),
		santanderSpec(),
		btgSpec(),
		unicredSpec(),
		c6Spec(),
		caixaSpec(),
	}
}

// DefaultRegistry compiles the built-in grammars.
func DefaultRegistry() (*Registry, error) {
	specs := DefaultSpecs()
	grammars := make([]*Grammar, 0, len(specs))
	for _, spec := range specs {
		g, err := Compile(spec)
		if err != nil {
			return nil, err
		}
		grammars = append(grammars, g)
	}
	return NewRegistry(DefaultSourceID, grammars...)
}

// MustDefaultRegistry is DefaultRegistry for callers that treat a broken
// built-in table as a programming error.
func MustDefaultRegistry() *Registry {
	r, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
