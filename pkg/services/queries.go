package services

// GROQ queries. They are sent to the content store verbatim; $params are
// supplied separately.

const propertyFields = `
  _id, title, slug, location, address, price, currency, status, propertyType,
  bedrooms, bathrooms, area, featured, mainImage, amenities, publishedAt`

const (
	propertiesQuery = `*[_type == "property" && !(_id in path("drafts.**"))] | order(publishedAt desc) {` + propertyFields + `
}`

	featuredPropertiesQuery = `*[_type == "property" && featured == true && !(_id in path("drafts.**"))] | order(publishedAt desc)[0...$limit] {` + propertyFields + `
}`

	propertyBySlugQuery = `*[_type == "property" && slug.current == $slug][0] {` + propertyFields + `,
  description,
  agent->{_id, name, phone, email, whatsapp, image},
  gallery->{_id, title, images}
}`

	relatedPropertiesQuery = `*[_type == "property" && propertyType == $type && slug.current != $slug] | order(publishedAt desc)[0...$limit] {` + propertyFields + `
}`

	postFields = `
  _id, title, slug, excerpt, mainImage, publishedAt,
  author->{_id, name, slug, image},
  categories[]->{_id, title, slug}`

	postsQuery = `*[_type == "post" && !(_id in path("drafts.**"))] | order(publishedAt desc) {` + postFields + `
}`

	latestPostsQuery = `*[_type == "post" && !(_id in path("drafts.**"))] | order(publishedAt desc)[0...$limit] {` + postFields + `
}`

	postBySlugQuery = `*[_type == "post" && slug.current == $slug][0] {
  _id, title, slug, excerpt, mainImage, publishedAt, body,
  author->{_id, name, slug, image, bio},
  categories[]->{_id, title, slug},
  "comments": *[_type == "comment" && post._ref == ^._id && approved == true] | order(_createdAt desc) {
    _id, name, comment, approved, _createdAt
  }
}`

	categoriesQuery = `*[_type == "category"] | order(title asc) {_id, title, slug, description}`

	reviewsQuery = `*[_type == "review" && approved == true] | order(_createdAt desc)[0...$limit] {_id, name, rating, message}`

	sellRequestsQuery = `*[_type == "sellRequest"] | order(submittedAt desc)[0...$limit] {
  _id, name, email, phone, location, propertyType, askingPrice, message, submittedAt
}`
)
