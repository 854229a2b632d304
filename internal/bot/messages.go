package bot

// User-facing message templates. Every message follows the same structure:
// Persian block, dashed separator line, English block. All templates are
// pre-escaped for MarkdownV2 at authoring time; only untrusted content
// (decoded payloads) goes through EscapeMarkdown at runtime.

const msgSeparator = "\n\n\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\\-\n\n"

const msgWelcome = "به ربات QR کد خوش آمدید\\! 🎉\n\n" +
	"این ربات می‌تواند:\n" +
	"1️⃣ متن یا لینک شما را به QR کد تبدیل کند\\.\n" +
	"2️⃣ محتوای QR کد را از تصاویر ارسالی بخواند\\.\n\n" +
	"لطفاً یک متن، لینک یا تصویر QR کد ارسال کنید\\." +
	msgSeparator +
	"Welcome to QR Code Bot\\! 🎉\n\n" +
	"This bot can:\n" +
	"1️⃣ Convert your text or link to a QR code\\.\n" +
	"2️⃣ Read QR code content from your images\\.\n\n" +
	"Please send a text, link, or QR code image\\."

const msgEmptyText = "لطفاً یک متن یا لینک معتبر وارد کنید\\." +
	msgSeparator +
	"Please enter a valid text or link\\."

const msgTooLongText = "متن شما از ۴۰۰۰ کاراکتر بیشتر است\\. لطفاً متن کوتاه‌تری ارسال کنید\\." +
	msgSeparator +
	"Your message exceeds 4000 characters\\. Please send a shorter text\\."

const msgInvalidURL = "لینک وارد شده معتبر نیست\\. لطفاً یک لینک معتبر وارد کنید\\." +
	msgSeparator +
	"Please enter a valid URL\\."

const msgQRCreated = "QR کد شما ساخته شد\\! ✅" +
	msgSeparator +
	"Your QR code has been created\\! ✅"

const msgGenerateFailed = "ساخت QR کد ناموفق بود\\. لطفاً متن کوتاه‌تری امتحان کنید\\." +
	msgSeparator +
	"Failed to create the QR code\\. Please try a shorter text\\."

const msgScanHeader = "محتوای QR کد شما: 👇" +
	msgSeparator +
	"Your QR code content: 👇"

const msgScanFailed = "خواندن QR کد ممکن نیست\\. لطفاً مطمئن شوید تصویر معتبر و واضح است\\." +
	msgSeparator +
	"Cannot read the QR code\\. Please make sure the image is valid and clear\\."
