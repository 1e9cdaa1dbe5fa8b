package domain

// FunctionMergePeople は2枚の写真を必要とする唯一のファンクションです。
const FunctionMergePeople = "merge-people"

// FunctionCard はUIに並ぶプリセット（作成時のスタイル、編集時の操作）です。
type FunctionCard struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// CreateFunctions は作成モードのカードです。
var CreateFunctions = []FunctionCard{
	{ID: "cinematic", Icon: "🎬", Label: "Cinematográfico", Description: "Iluminação e composição de cinema"},
	{ID: "digital-art", Icon: "🎨", Label: "Arte Digital", Description: "Ilustração estilizada vibrante"},
	{ID: "photoreal", Icon: "📸", Label: "Fotorealista", Description: "Fotografia hiper-realista"},
	{ID: "cyberpunk", Icon: "🌃", Label: "Cyberpunk", Description: "Luzes neon e paisagens futuristas"},
}

// EditFunctions は編集モードのカードです。
var EditFunctions = []FunctionCard{
	{ID: "restore-old", Icon: "🕰️", Label: "Restaurar Antigas", Description: "Restaurar fotos velhas/danificadas"},
	{ID: FunctionMergePeople, Icon: "🫂", Label: "Unir Pessoas", Description: "Colocar pessoas abraçadas/juntas"},
	{ID: "age-progression", Icon: "⏳", Label: "Viajar no Tempo", Description: "Simular versão idosa ou jovem"},
	{ID: "luxury-life", Icon: "💎", Label: "Vida Luxuosa", Description: "Mansões, carros e alta costura"},
	{ID: "variations", Icon: "🔄", Label: "Variações", Description: "Gerar versões diferentes"},
}

// FunctionsFor はモードに対応するカード一覧を返します。
func FunctionsFor(mode Mode) []FunctionCard {
	switch mode {
	case ModeCreate:
		return CreateFunctions
	case ModeEdit:
		return EditFunctions
	default:
		return nil
	}
}

// LookupFunction はモード内でIDに一致するカードを探します。
func LookupFunction(mode Mode, id string) (FunctionCard, bool) {
	for _, card := range FunctionsFor(mode) {
		if card.ID == id {
			return card, true
		}
	}
	return FunctionCard{}, false
}
