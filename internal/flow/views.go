package flow

// Rendering limits for user-facing text. Telegram rejects messages over
// 4096 characters, so long text is clipped per block and chunked per message.
const (
	searchSynopsisLimit = 600
	detailSynopsisLimit = 2000
	voteSynopsisLimit   = 1200
	voteJoinLimit       = 3500
	messageChunkLimit   = 4000
	albumCaptionLimit   = 1024
)

// attributionLine credits the catalog provider on every vote bundle.
const attributionLine = "Data and images: © TMDB"

// albumCaption heads the poster album of a vote bundle.
const albumCaption = "<b>Posters</b>"

// View is a transport-agnostic model of one outbound interaction. The bot
// layer switches on the concrete type to decide how to render it.
type View interface {
	view()
}

// Button is one inline keyboard button carrying an opaque callback token.
type Button struct {
	Label string
	Token string
}

// Notice is a single short plain-text message.
type Notice struct {
	Text string
}

// SearchView presents catalog matches with one add button per addable
// result. The transport sends Text first, then Prompt with the keyboard.
type SearchView struct {
	Text    string
	Prompt  string
	Buttons []Button
}

// ListView presents the stored shortlist with a show/delete button row per
// entry. Rows is empty when the list is empty.
type ListView struct {
	Text string
	Rows [][]Button
}

// DetailView presents one title with its synopsis and, when present, a poster
// path the transport may fetch. A failed poster fetch degrades to text only.
type DetailView struct {
	Text       string
	PosterPath string
}

// VoteView is the composed poll bundle: the poll itself, a poster album, the
// joined synopses split into sendable chunks, and the trailer digest.
type VoteView struct {
	Question        string
	Options         []string
	Anonymous       bool
	MultipleAnswers bool
	PosterPaths     []string
	AlbumCaption    string
	SynopsisChunks  []string
	TrailerText     string
	Attribution     string
}

func (Notice) view()     {}
func (SearchView) view() {}
func (ListView) view()   {}
func (DetailView) view() {}
func (VoteView) view()   {}
