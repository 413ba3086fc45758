package lexicon

// Default returns the built-in Odesa lexicon.
func Default() *Lexicon {
	return New(defaultDistricts, defaultMicroareas)
}

var defaultDistricts = []Entry{
	{ID: 5, Label: "Київський", Variants: []string{"київський", "киевский", "київському", "киевском", "київськ"}},
	{ID: 6, Label: "Малиновський", Variants: []string{"малиновський", "малиновский", "малиновському", "малиновск"}},
	{ID: 8, Label: "Приморський", Variants: []string{"приморський", "приморский", "приморському", "приморск"}},
	{ID: 11, Label: "Суворовський", Variants: []string{"суворовський", "суворовский", "суворовському", "суворовск"}},
}

var defaultMicroareas = []Entry{
	{ID: 89, Label: "Бугаївка", Variants: []string{"бугаївка", "бугаевка", "бугаївці", "бугаевке"}},
	{ID: 90, Label: "пос. Дзержинського", Variants: []string{"дзержинського", "дзержинского", "пос дзержинського", "пос. дзержинского"}},
	{ID: 91, Label: "Застава", Variants: []string{"застава", "заставі", "заставе"}},
	{ID: 92, Label: "Ленпоселок", Variants: []string{"ленпоселок", "ленпоселку"}},
	{ID: 93, Label: "Мельниці", Variants: []string{"мельниці", "мельницы"}},
	{ID: 94, Label: "Молдаванка", Variants: []string{"молдаванка", "молдаванці", "молдаванке"}},
	{ID: 95, Label: "пос. Сахарний", Variants: []string{"сахарний", "сахарный", "пос сахарный"}},
	{ID: 96, Label: "Слободка", Variants: []string{"слободка", "слободці", "слободке"}},
	{ID: 97, Label: "Фонтан", Variants: []string{"фонтан", "великий фонтан", "фонтані", "фонтане"}},
	{ID: 98, Label: "Черемушки", Variants: []string{"черемушки", "черомушки", "черемушкі"}},
	{ID: 99, Label: "Аркадія", Variants: []string{"аркадія", "аркадия", "аркадії", "аркадии"}},
	{ID: 102, Label: "Центр", Variants: []string{"центр", "центрі", "центре", "центральний"}},
	{ID: 103, Label: "Шевченко-Французький (Французький бульвар)", Variants: []string{"шевченко-французький", "шевченко французький", "французький бульвар", "французский бульвар"}},
	{ID: 104, Label: "Большевик", Variants: []string{"большевик", "більшовик"}},
	{ID: 105, Label: "пос. Котовського", Variants: []string{"котовського", "пос котовского", "котовского"}},
	{ID: 106, Label: "Крива Балка", Variants: []string{"крива балка", "кривая балка"}},
	{ID: 107, Label: "Куяльник", Variants: []string{"куяльник", "куяльнику", "куяльнике"}},
	{ID: 108, Label: "Лузановка", Variants: []string{"лузановка", "лузановці", "лузановке"}},
	{ID: 109, Label: "пос. Нафтовиків", Variants: []string{"нафтовиків", "нефтяников", "пос нефтяников"}},
	{ID: 110, Label: "Пересип", Variants: []string{"пересип", "пересыпь"}},
	{ID: 112, Label: "Шевченко", Variants: []string{"шевченко"}},
	{ID: 113, Label: "Вузівський", Variants: []string{"вузівський", "вузовский"}},
	{ID: 114, Label: "Дача Ковалевського", Variants: []string{"дача ковалевского", "дача ковалевського"}},
	{ID: 115, Label: "Дружний", Variants: []string{"дружний", "дружний ж/м", "дружный"}},
	{ID: 116, Label: "Таїрова", Variants: []string{"таїрова", "таирова", "таїрово", "таирово"}},
	{ID: 118, Label: "Царське село", Variants: []string{"царське село", "царское село"}},
	{ID: 119, Label: "Червоний Хутір", Variants: []string{"червоний хутір", "червоный хутор", "красный хутор"}},
	{ID: 121, Label: "Чорноморка", Variants: []string{"чорноморка", "черноморка"}},
	{ID: 122, Label: "Чубаївка", Variants: []string{"чубаївка", "чубаевка"}},
}
